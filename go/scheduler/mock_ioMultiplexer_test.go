// Package scheduler is a generated GoMock package.
package scheduler

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockIOMultiplexer is a mock of ioMultiplexer interface.
type MockIOMultiplexer struct {
	ctrl     *gomock.Controller
	recorder *MockIOMultiplexerMockRecorder
}

// MockIOMultiplexerMockRecorder is the mock recorder for MockIOMultiplexer.
type MockIOMultiplexerMockRecorder struct {
	mock *MockIOMultiplexer
}

// NewMockIOMultiplexer creates a new mock instance.
func NewMockIOMultiplexer(ctrl *gomock.Controller) *MockIOMultiplexer {
	mock := &MockIOMultiplexer{ctrl: ctrl}
	mock.recorder = &MockIOMultiplexerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIOMultiplexer) EXPECT() *MockIOMultiplexerMockRecorder {
	return m.recorder
}

// registerRead mocks base method.
func (m *MockIOMultiplexer) registerRead(fd int, strandID uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "registerRead", fd, strandID)
	ret0, _ := ret[0].(error)
	return ret0
}

// registerRead indicates an expected call of registerRead.
func (mr *MockIOMultiplexerMockRecorder) registerRead(fd, strandID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "registerRead", reflect.TypeOf((*MockIOMultiplexer)(nil).registerRead), fd, strandID)
}

// registerWrite mocks base method.
func (m *MockIOMultiplexer) registerWrite(fd int, strandID uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "registerWrite", fd, strandID)
	ret0, _ := ret[0].(error)
	return ret0
}

// registerWrite indicates an expected call of registerWrite.
func (mr *MockIOMultiplexerMockRecorder) registerWrite(fd, strandID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "registerWrite", reflect.TypeOf((*MockIOMultiplexer)(nil).registerWrite), fd, strandID)
}

// wait mocks base method.
func (m *MockIOMultiplexer) wait() ([]uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "wait")
	ret0, _ := ret[0].([]uint64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// wait indicates an expected call of wait.
func (mr *MockIOMultiplexerMockRecorder) wait() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "wait", reflect.TypeOf((*MockIOMultiplexer)(nil).wait))
}

// close mocks base method.
func (m *MockIOMultiplexer) close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "close")
	ret0, _ := ret[0].(error)
	return ret0
}

// close indicates an expected call of close.
func (mr *MockIOMultiplexerMockRecorder) close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "close", reflect.TypeOf((*MockIOMultiplexer)(nil).close))
}
