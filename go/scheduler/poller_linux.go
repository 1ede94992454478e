//go:build linux

package scheduler

import "golang.org/x/sys/unix"

// poller wraps epoll for the Linux I/O-readiness multiplexer required by
// §3.4/§4.E. Registration is edge-triggered and one-shot on both supported
// kernels. §5 guarantees a single OS thread drives the whole scheduler, so
// no synchronization is needed around the fd table.
type poller struct {
	epfd     int
	eventBuf [maxEventsPerBatch]unix.EpollEvent
	fdToUser map[int32]uint64 // fd -> strand id, for dispatch
}

func newPoller() (*poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &poller{epfd: epfd, fdToUser: make(map[int32]uint64)}, nil
}

func (p *poller) close() error {
	return unix.Close(p.epfd)
}

// registerRead/registerWrite arm fd for the given readiness class,
// edge-triggered + one-shot (EPOLLET|EPOLLONESHOT), associating it with
// strandID for dispatch (§4.E "an event fires exactly once; the strand must
// either re-register... or continue").
func (p *poller) registerRead(fd int, strandID uint64) error {
	return p.register(fd, unix.EPOLLIN, strandID)
}

func (p *poller) registerWrite(fd int, strandID uint64) error {
	return p.register(fd, unix.EPOLLOUT, strandID)
}

func (p *poller) register(fd int, events uint32, strandID uint64) error {
	op := unix.EPOLL_CTL_ADD
	if _, exists := p.fdToUser[int32(fd)]; exists {
		op = unix.EPOLL_CTL_MOD
	}
	ev := unix.EpollEvent{
		Events: events | unix.EPOLLET | unix.EPOLLONESHOT,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(p.epfd, op, fd, &ev); err != nil {
		return err
	}
	p.fdToUser[int32(fd)] = strandID
	return nil
}

// wait blocks indefinitely (§4.E "Wait uses an infinite timeout") and
// returns up to 32 ready strand ids in kernel delivery order.
func (p *poller) wait() ([]uint64, error) {
	n, err := unix.EpollWait(p.epfd, p.eventBuf[:], -1)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	ready := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		fd := p.eventBuf[i].Fd
		if id, ok := p.fdToUser[fd]; ok {
			ready = append(ready, id)
			delete(p.fdToUser, fd)
		}
	}
	return ready, nil
}
