package server

import (
	"io"

	"github.com/pkg/errors"

	"pollredis/internal/types"
	"pollredis/pkg/connection"
	"pollredis/pkg/datastruct"
	"pollredis/pkg/protocol"
)

// Want 连接希望事件循环下一轮关注什么
type Want int

const (
	WantNone Want = iota
	WantRead
	WantWrite
	WantClose
)

func (w Want) String() string {
	switch w {
	case WantRead:
		return "read"
	case WantWrite:
		return "write"
	case WantClose:
		return "close"
	default:
		return "none"
	}
}

// 关闭原因，同时用作指标标签
const (
	closeEOF        = "eof"
	closeReadError  = "read_error"
	closeWriteError = "write_error"
	closeTooLarge   = "too_large"
	closeMalformed  = "malformed"
	closeErrorEvent = "error_event"
	closeShutdown   = "shutdown"
)

// Executor 执行一条已解码的命令
type Executor interface {
	Exec(cmdLine types.CmdLine) *protocol.Response
}

// Connection 一个客户端的读写缓冲和状态机
//
// incoming 头部是最早收到、尚未完整解析的帧；
// outgoing 里是已经序列化、按发送顺序排列的完整响应帧。
type Connection struct {
	conn connection.Connection
	want Want

	incoming *datastruct.ByteBuffer
	outgoing *datastruct.ByteBuffer

	// 对端已经半关闭，发完 outgoing 后关闭连接
	peerClosed  bool
	closeReason string
}

func NewConnection(conn connection.Connection) *Connection {
	return &Connection{
		conn:     conn,
		want:     WantRead,
		incoming: datastruct.NewByteBuffer(4096),
		outgoing: datastruct.NewByteBuffer(4096),
	}
}

func (c *Connection) Fd() int {
	return c.conn.Fd()
}

func (c *Connection) Want() Want {
	return c.want
}

func (c *Connection) CloseReason() string {
	return c.closeReason
}

func (c *Connection) markClose(reason string) {
	c.want = WantClose
	if c.closeReason == "" {
		c.closeReason = reason
	}
}

// HandleRead 做一次非阻塞读，然后尽可能多地处理完整请求帧
// scratch 是事件循环复用的读缓冲，maxSize 为单帧负载上限
func (c *Connection) HandleRead(scratch []byte, exec Executor, maxSize int) {
	n, err := c.conn.Read(scratch)
	switch {
	case errors.Is(err, connection.ErrWouldBlock):
		// 虚假就绪，状态不变
		return
	case err == io.EOF || (err == nil && n == 0):
		c.peerClosed = true
		if c.outgoing.Len() > 0 {
			c.want = WantWrite
			return
		}
		c.markClose(closeEOF)
		return
	case err != nil:
		c.markClose(closeReadError)
		return
	}
	bytesReadCounter.Add(float64(n))

	c.incoming.Append(scratch[:n])

	processed := 0
	for c.want != WantClose {
		args, size, err := protocol.ParseRequest(c.incoming.Bytes(), maxSize)
		if errors.Is(err, protocol.ErrIncomplete) {
			break
		}
		// 长度已知的非法帧也要跳过，不能留在缓冲区里反复解析
		if size > 0 {
			c.incoming.Consume(size)
		}
		if err != nil {
			if errors.Is(err, protocol.ErrTooLarge) {
				c.markClose(closeTooLarge)
			} else {
				c.markClose(closeMalformed)
			}
			break
		}

		reply := exec.Exec(types.CmdLine(args))
		c.outgoing.Append(reply.ToBytes())
		processed++
	}

	if c.want == WantClose {
		return
	}
	if processed == 0 && c.outgoing.Len() == 0 {
		c.want = WantRead
		return
	}
	// 先把响应发完再继续读，避免流水线请求的响应无限堆积
	c.want = WantWrite
}

// HandleWrite 做一次非阻塞写，发送 outgoing 的全部内容
func (c *Connection) HandleWrite() {
	if c.outgoing.Len() == 0 {
		return
	}

	n, err := c.conn.Write(c.outgoing.Bytes())
	if errors.Is(err, connection.ErrWouldBlock) {
		return
	}
	if err != nil {
		c.markClose(closeWriteError)
		return
	}
	bytesWrittenCounter.Add(float64(n))

	c.outgoing.Consume(n)
	if c.outgoing.Len() > 0 {
		c.want = WantWrite
		return
	}
	if c.peerClosed {
		c.markClose(closeEOF)
		return
	}
	c.want = WantRead
}

// Close 关闭传输句柄，未发送的响应直接丢弃
func (c *Connection) Close() error {
	c.incoming.Reset()
	c.outgoing.Reset()
	if c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}
