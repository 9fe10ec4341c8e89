package server

import (
	"io"
	"time"

	"pollredis/pkg/connection"
	"pollredis/pkg/netpoll"
)

// fakeConn 可编排读写结果的连接
type fakeConn struct {
	fd int

	reads   [][]byte // 每次 Read 依次返回一块
	eof     bool     // reads 用完后返回 io.EOF
	readErr error    // reads 用完后返回的错误，优先于 eof

	written    []byte
	writeLimit int // 单次 Write 最多接受的字节数，0 表示不限
	writeErr   error

	closed     bool
	closeCalls int
}

func (f *fakeConn) Fd() int { return f.fd }

func (f *fakeConn) Read(b []byte) (int, error) {
	if len(f.reads) > 0 {
		n := copy(b, f.reads[0])
		if n < len(f.reads[0]) {
			f.reads[0] = f.reads[0][n:]
		} else {
			f.reads = f.reads[1:]
		}
		return n, nil
	}
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.eof {
		return 0, io.EOF
	}
	return 0, connection.ErrWouldBlock
}

func (f *fakeConn) Write(b []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	n := len(b)
	if f.writeLimit > 0 && n > f.writeLimit {
		n = f.writeLimit
	}
	f.written = append(f.written, b[:n]...)
	return n, nil
}

func (f *fakeConn) Close() error {
	f.closeCalls++
	f.closed = true
	return nil
}

func (f *fakeConn) IsClosed() bool { return f.closed }

func (f *fakeConn) RemoteAddr() string { return "fake" }

// fakeListener 依次吐出 pending 中的连接
type fakeListener struct {
	fd      int
	pending []connection.Connection
}

func (l *fakeListener) Fd() int { return l.fd }

func (l *fakeListener) Accept() (connection.Connection, error) {
	if len(l.pending) == 0 {
		return nil, connection.ErrWouldBlock
	}
	c := l.pending[0]
	l.pending = l.pending[1:]
	return c, nil
}

func (l *fakeListener) Close() error { return nil }

func (l *fakeListener) Addr() string { return "fake:0" }

// fakePoller 按脚本返回就绪结果，并记录每轮的关注列表
type fakePoller struct {
	script    []pollStep
	interests [][]netpoll.Interest
}

type pollStep struct {
	ready []netpoll.Readiness
	err   error
}

func (p *fakePoller) Wait(interests []netpoll.Interest, _ time.Duration) ([]netpoll.Readiness, error) {
	p.interests = append(p.interests, append([]netpoll.Interest(nil), interests...))
	if len(p.script) == 0 {
		return nil, nil
	}
	step := p.script[0]
	p.script = p.script[1:]
	return step.ready, step.err
}
