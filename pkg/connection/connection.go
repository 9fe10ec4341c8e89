package connection

import "github.com/pkg/errors"

var (
	// ErrWouldBlock 非阻塞操作暂时无法推进，等下一次就绪再试
	ErrWouldBlock = errors.New("operation would block")
	// ErrClosed 连接已关闭
	ErrClosed = errors.New("connection closed")
)

// Connection 是一个已接受的非阻塞字节流，读写都可能只完成一部分
type Connection interface {
	// Fd 传输句柄，用于注册就绪事件
	Fd() int

	// Read 对端关闭返回 io.EOF，暂无数据返回 ErrWouldBlock
	Read([]byte) (int, error)

	// Write 可能只写入一部分，缓冲区满返回 ErrWouldBlock
	Write([]byte) (int, error)

	// 关闭连接
	Close() error

	// 连接是否已关闭
	IsClosed() bool

	// 获取客户端地址（用于日志）
	RemoteAddr() string
}

// Listener 监听套接字，就绪时每次 Accept 产出零或一个新连接
type Listener interface {
	Fd() int

	// Accept 没有待接受的连接时返回 ErrWouldBlock
	Accept() (Connection, error)

	Close() error

	// Addr 实际监听地址，端口为 0 时返回内核分配的端口
	Addr() string
}
