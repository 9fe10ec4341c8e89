//go:build linux

package connection

import (
	"io"
	"net"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// TCPConnection 直接基于文件描述符的非阻塞连接，只在事件循环 goroutine 中使用
type TCPConnection struct {
	fd     int
	remote string
	closed bool
}

func NewTCPConnection(fd int, remote string) *TCPConnection {
	return &TCPConnection{
		fd:     fd,
		remote: remote,
	}
}

func (c *TCPConnection) Fd() int {
	return c.fd
}

func (c *TCPConnection) Read(b []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	for {
		n, err := unix.Read(c.fd, b)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return 0, ErrWouldBlock
		case err != nil:
			return 0, os.NewSyscallError("read", err)
		case n == 0 && len(b) > 0:
			return 0, io.EOF
		}
		return n, nil
	}
}

func (c *TCPConnection) Write(b []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	for {
		n, err := unix.Write(c.fd, b)
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return 0, ErrWouldBlock
		case err != nil:
			return 0, os.NewSyscallError("write", err)
		}
		return n, nil
	}
}

func (c *TCPConnection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return os.NewSyscallError("close", unix.Close(c.fd))
}

func (c *TCPConnection) IsClosed() bool {
	return c.closed
}

func (c *TCPConnection) RemoteAddr() string {
	return c.remote
}

// TCPListener 非阻塞监听套接字
type TCPListener struct {
	fd     int
	addr   string
	closed bool
}

// Listen 创建、绑定并监听 addr，地址为空主机时监听所有网卡
func Listen(addr string) (*TCPListener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", addr)
	}

	domain, sa := unix.AF_INET, unix.Sockaddr(nil)
	if ip4 := tcpAddr.IP.To4(); tcpAddr.IP == nil || ip4 != nil {
		inet4 := &unix.SockaddrInet4{Port: tcpAddr.Port}
		copy(inet4.Addr[:], ip4)
		sa = inet4
	} else {
		domain = unix.AF_INET6
		inet6 := &unix.SockaddrInet6{Port: tcpAddr.Port}
		copy(inet6.Addr[:], tcpAddr.IP.To16())
		sa = inet6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(os.NewSyscallError("socket", err), "listen %s", addr)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(os.NewSyscallError("setsockopt", err), "listen %s", addr)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(os.NewSyscallError("bind", err), "listen %s", addr)
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(os.NewSyscallError("listen", err), "listen %s", addr)
	}

	bound, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(os.NewSyscallError("getsockname", err), "listen %s", addr)
	}

	return &TCPListener{
		fd:   fd,
		addr: sockaddrString(bound),
	}, nil
}

func (l *TCPListener) Fd() int {
	return l.fd
}

func (l *TCPListener) Accept() (Connection, error) {
	if l.closed {
		return nil, ErrClosed
	}
	nfd, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		switch err {
		// 连接在 accept 之前被对端放弃同样视为"没有连接"
		case unix.EAGAIN, unix.EINTR, unix.ECONNABORTED:
			return nil, ErrWouldBlock
		}
		return nil, os.NewSyscallError("accept4", err)
	}
	// 小响应帧不等待合并
	_ = unix.SetsockoptInt(nfd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)

	return NewTCPConnection(nfd, sockaddrString(sa)), nil
}

func (l *TCPListener) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	return os.NewSyscallError("close", unix.Close(l.fd))
}

func (l *TCPListener) Addr() string {
	return l.addr
}

func sockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	case *unix.SockaddrInet6:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	default:
		return "unknown"
	}
}
