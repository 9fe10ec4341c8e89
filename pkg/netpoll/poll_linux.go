package netpoll

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// PollPoller 基于 poll(2) 的实现，内部缓冲区在多轮之间复用
type PollPoller struct {
	fds   []unix.PollFd
	ready []Readiness
}

func NewPoller() *PollPoller {
	return &PollPoller{}
}

func (p *PollPoller) Wait(interests []Interest, timeout time.Duration) ([]Readiness, error) {
	p.fds = p.fds[:0]
	for _, in := range interests {
		p.fds = append(p.fds, unix.PollFd{
			Fd:     int32(in.Fd),
			Events: toPollEvents(in.Events),
		})
	}

	n, err := unix.Poll(p.fds, int(timeout/time.Millisecond))
	if err == unix.EINTR {
		return nil, ErrInterrupted
	}
	if err != nil {
		return nil, os.NewSyscallError("poll", err)
	}

	p.ready = p.ready[:0]
	if n == 0 {
		return p.ready, nil
	}
	for _, fd := range p.fds {
		if fd.Revents == 0 {
			continue
		}
		p.ready = append(p.ready, Readiness{
			Fd:     int(fd.Fd),
			Events: fromPollEvents(fd.Revents),
		})
	}
	return p.ready, nil
}

func toPollEvents(e Event) int16 {
	var events int16
	if e&EventRead != 0 {
		events |= unix.POLLIN
	}
	if e&EventWrite != 0 {
		events |= unix.POLLOUT
	}
	if e&EventError != 0 {
		events |= unix.POLLERR
	}
	return events
}

func fromPollEvents(revents int16) Event {
	var e Event
	if revents&unix.POLLIN != 0 {
		e |= EventRead
	}
	if revents&unix.POLLOUT != 0 {
		e |= EventWrite
	}
	// POLLHUP/POLLNVAL 无论是否注册都会上报，统一视为错误
	if revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
		e |= EventError
	}
	return e
}
