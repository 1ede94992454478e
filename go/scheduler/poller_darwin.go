//go:build darwin

package scheduler

import "golang.org/x/sys/unix"

// poller wraps kqueue for the BSD/macOS I/O-readiness multiplexer required
// by §3.4/§4.E. The single-OS-thread cooperative model (§5) means no
// locking is needed around the fd table; strands are looked up by fd via a
// plain map.
type poller struct {
	kq       int
	eventBuf [maxEventsPerBatch]unix.Kevent_t
	fdToUser map[int]uint64
}

func newPoller() (*poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	return &poller{kq: kq, fdToUser: make(map[int]uint64)}, nil
}

func (p *poller) close() error {
	return unix.Close(p.kq)
}

func (p *poller) registerRead(fd int, strandID uint64) error {
	return p.register(fd, unix.EVFILT_READ, strandID)
}

func (p *poller) registerWrite(fd int, strandID uint64) error {
	return p.register(fd, unix.EVFILT_WRITE, strandID)
}

// register arms fd edge-triggered + one-shot (EV_CLEAR|EV_ONESHOT), the
// kqueue analogue of epoll's EPOLLET|EPOLLONESHOT.
func (p *poller) register(fd int, filter int16, strandID uint64) error {
	kev := unix.Kevent_t{
		Ident:  uint64(fd),
		Filter: filter,
		Flags:  unix.EV_ADD | unix.EV_CLEAR | unix.EV_ONESHOT,
	}
	changes := []unix.Kevent_t{kev}
	if _, err := unix.Kevent(p.kq, changes, nil, nil); err != nil {
		return err
	}
	p.fdToUser[fd] = strandID
	return nil
}

func (p *poller) wait() ([]uint64, error) {
	n, err := unix.Kevent(p.kq, nil, p.eventBuf[:], nil)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	ready := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		fd := int(p.eventBuf[i].Ident)
		if id, ok := p.fdToUser[fd]; ok {
			ready = append(ready, id)
			delete(p.fdToUser, fd)
		}
	}
	return ready, nil
}
