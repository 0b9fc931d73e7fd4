//go:build linux

package asyncrt

import (
	"time"

	"golang.org/x/sys/unix"
)

// epollPoller is the Linux poller implementation, grounded on the
// eventloop package's FastPoller: a single epoll instance, a preallocated
// event buffer, and level-triggered interest (no EPOLLONESHOT) that
// EPOLL_CTL_MOD replaces.
//
// The interest key is carried in the epoll_data union across both 32-bit
// halves exposed by unix.EpollEvent (Fd, Pad), not the real fd — this is
// what lets the reactor use its own slot index as the poller key instead
// of the raw fd number, which the OS is free to reuse the instant a
// caller closes it.
type epollPoller struct {
	epfd     int
	eventBuf [256]unix.EpollEvent
}

func newPlatformPoller() (poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, &TransportError{Op: "epoll_create1", Cause: err}
	}
	return &epollPoller{epfd: epfd}, nil
}

func packKey(key uint64) (fd, pad int32) {
	return int32(uint32(key)), int32(uint32(key >> 32))
}

func unpackKey(fd, pad int32) uint64 {
	return uint64(uint32(fd)) | uint64(uint32(pad))<<32
}

func interestToEpollEvents(interest Interest) uint32 {
	var ev uint32
	if interest.Readable {
		ev |= unix.EPOLLIN
	}
	if interest.Writable {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func (p *epollPoller) ctl(op int, fd int, interest Interest) error {
	k, pad := packKey(interest.Key)
	ev := &unix.EpollEvent{
		Events: interestToEpollEvents(interest),
		Fd:     k,
		Pad:    pad,
	}
	return unix.EpollCtl(p.epfd, op, fd, ev)
}

func (p *epollPoller) Add(fd int, interest Interest) error {
	if err := p.ctl(unix.EPOLL_CTL_ADD, fd, interest); err != nil {
		return &TransportError{Op: "epoll_ctl(ADD)", Cause: err}
	}
	return nil
}

func (p *epollPoller) Modify(fd int, interest Interest) error {
	if err := p.ctl(unix.EPOLL_CTL_MOD, fd, interest); err != nil {
		return &TransportError{Op: "epoll_ctl(MOD)", Cause: err}
	}
	return nil
}

func (p *epollPoller) Remove(fd int) error {
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		if err == unix.ENOENT || err == unix.EBADF {
			return nil
		}
		return &TransportError{Op: "epoll_ctl(DEL)", Cause: err}
	}
	return nil
}

func (p *epollPoller) Wait(dst []Event, timeout time.Duration) ([]Event, error) {
	timeoutMs := -1
	if timeout >= 0 {
		timeoutMs = int(timeout.Milliseconds())
	}

	n, err := unix.EpollWait(p.epfd, p.eventBuf[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return dst, nil
		}
		return dst, &TransportError{Op: "epoll_wait", Cause: err}
	}

	for i := 0; i < n; i++ {
		ev := &p.eventBuf[i]
		dst = append(dst, Event{
			Key:      unpackKey(ev.Fd, ev.Pad),
			Readable: ev.Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR) != 0,
			Writable: ev.Events&(unix.EPOLLOUT|unix.EPOLLHUP|unix.EPOLLERR) != 0,
		})
	}
	return dst, nil
}

func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}
