package server

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pollredis/internal/command"
	"pollredis/internal/common"
	"pollredis/internal/config"
	"pollredis/internal/database"
	"pollredis/internal/types"
	"pollredis/pkg/connection"
	"pollredis/pkg/netpoll"
	"pollredis/pkg/protocol"
)

// maxAcceptPerTick 每轮最多接受的新连接数，避免连接风暴饿死已有连接
const maxAcceptPerTick = 128

// Server 单线程事件循环，持有监听句柄和全部连接
type Server struct {
	cfg    *config.Config
	db     *database.DB
	poller netpoll.Poller
	logger *zap.Logger

	// 以传输句柄为键，从表中删除是连接销毁的唯一入口
	conns map[int]*Connection

	interests []netpoll.Interest
	scratch   []byte
	exec      Executor
}

// Option 服务端可选项
type Option func(*Server)

func WithPoller(p netpoll.Poller) Option {
	return func(s *Server) {
		s.poller = p
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func NewServer(cfg *config.Config, db *database.DB, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		db:      db,
		logger:  zap.NewNop(),
		conns:   make(map[int]*Connection),
		scratch: make([]byte, cfg.ReadBufferBytes()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.poller == nil {
		s.poller = netpoll.NewPoller()
	}
	s.exec = &dispatcher{db: db, logger: s.logger}
	return s
}

// ListenAndServe 监听配置的地址并运行事件循环，直到 ctx 取消
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := connection.Listen(s.cfg.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	s.logger.Info("server listening", zap.String("addr", ln.Addr()))
	return s.Serve(ctx, ln)
}

// Serve 在 ln 上运行事件循环。ctx 取消后在下一轮开始前返回 nil，
// 就绪等待的非中断失败直接返回错误。
func (s *Server) Serve(ctx context.Context, ln connection.Listener) error {
	defer s.closeAll()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server stopping", zap.Int("connections", len(s.conns)))
			return nil
		default:
		}

		if err := s.tick(ln); err != nil {
			s.logger.Error("event loop failed", zap.Error(err))
			return err
		}
	}
}

// ConnCount 当前存活连接数
func (s *Server) ConnCount() int {
	return len(s.conns)
}

func (s *Server) tick(ln connection.Listener) error {
	s.interests = s.interests[:0]
	s.interests = append(s.interests, netpoll.Interest{Fd: ln.Fd(), Events: netpoll.EventRead})
	for fd, c := range s.conns {
		events := netpoll.EventError
		switch c.Want() {
		case WantRead:
			events |= netpoll.EventRead
		case WantWrite:
			events |= netpoll.EventWrite
		}
		s.interests = append(s.interests, netpoll.Interest{Fd: fd, Events: events})
	}

	start := time.Now()
	ready, err := s.poller.Wait(s.interests, s.cfg.PollTimeout.Duration)
	pollWaitHistogram.Observe(time.Since(start).Seconds())
	if errors.Is(err, netpoll.ErrInterrupted) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "wait for readiness")
	}

	listenFd := ln.Fd()
	for _, r := range ready {
		if r.Fd == listenFd {
			s.acceptAll(ln)
			break
		}
	}

	for _, r := range ready {
		if r.Fd == listenFd {
			continue
		}
		// 关闭发生在 accept 之后，新连接不会复用本轮 ready 里的句柄
		c, ok := s.conns[r.Fd]
		if !ok {
			continue
		}
		if r.Events&netpoll.EventRead != 0 {
			c.HandleRead(s.scratch, s.exec, s.cfg.MaxMessageBytes())
		}
		if r.Events&netpoll.EventWrite != 0 {
			c.HandleWrite()
		}
		if r.Events&netpoll.EventError != 0 {
			c.markClose(closeErrorEvent)
		}
		if c.Want() == WantClose {
			s.closeConn(c)
		}
	}
	return nil
}

func (s *Server) acceptAll(ln connection.Listener) {
	for i := 0; i < maxAcceptPerTick; i++ {
		conn, err := ln.Accept()
		if errors.Is(err, connection.ErrWouldBlock) {
			return
		}
		if err != nil {
			s.logger.Warn("accept connection failed", zap.Error(err))
			return
		}

		c := NewConnection(conn)
		s.conns[c.Fd()] = c
		connectionAcceptedCounter.Inc()
		connectionGauge.Set(float64(len(s.conns)))
		s.logger.Debug("accept connection",
			zap.Int("fd", c.Fd()),
			zap.String("remote", conn.RemoteAddr()))
	}
}

func (s *Server) closeConn(c *Connection) {
	fd := c.Fd()
	if err := c.Close(); err != nil {
		s.logger.Warn("close connection failed", zap.Int("fd", fd), zap.Error(err))
	}
	delete(s.conns, fd)

	connectionClosedCounter.WithLabelValues(c.CloseReason()).Inc()
	connectionGauge.Set(float64(len(s.conns)))
	s.logger.Debug("connection closed",
		zap.Int("fd", fd),
		zap.String("reason", c.CloseReason()))
}

func (s *Server) closeAll() {
	for _, c := range s.conns {
		c.markClose(closeShutdown)
		s.closeConn(c)
	}
}

// dispatcher 在 DB.Exec 外面记录指标和调试日志
type dispatcher struct {
	db     *database.DB
	logger *zap.Logger
}

func (d *dispatcher) Exec(cmdLine types.CmdLine) *protocol.Response {
	reply := d.db.Exec(cmdLine)

	commandCounter.WithLabelValues(commandLabel(cmdLine), reply.Status.String()).Inc()
	if cmdLine.IsWrite() && reply.Status == protocol.StatusSuccess {
		writeCounter.Inc()
		keysGauge.Set(float64(d.db.Len()))
	}
	if ce := d.logger.Check(zap.DebugLevel, "exec command"); ce != nil {
		ce.Write(common.CmdLineField(cmdLine), zap.Stringer("status", reply.Status))
	}
	return reply
}

// commandLabel 未知命令统一归为 unknown，防止标签基数失控
func commandLabel(cmdLine types.CmdLine) string {
	if _, ok := command.GetCmd(cmdLine.Name()); ok {
		return cmdLine.Name()
	}
	return "unknown"
}
