// Package netpoll 封装就绪等待原语
//
// 关心的事件(Interest)由调用方每轮根据连接状态重新构建，
// 等待结果(Readiness)是独立的结构，读取后立即消费，两者互不复用。
package netpoll

import (
	"time"

	"github.com/pkg/errors"
)

// ErrInterrupted 等待被信号打断，调用方应直接重试
var ErrInterrupted = errors.New("netpoll: wait interrupted")

// Event 就绪事件位图
type Event uint8

const (
	EventRead Event = 1 << iota
	EventWrite
	EventError
)

func (e Event) String() string {
	s := ""
	if e&EventRead != 0 {
		s += "R"
	}
	if e&EventWrite != 0 {
		s += "W"
	}
	if e&EventError != 0 {
		s += "E"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Interest 某个句柄本轮关心的事件
type Interest struct {
	Fd     int
	Events Event
}

// Readiness 某个句柄实际就绪的事件
type Readiness struct {
	Fd     int
	Events Event
}

// Poller 阻塞直到至少一个句柄就绪或超时，结果按 interests 的顺序返回，
// 只包含有事件的句柄。返回的切片在下一次 Wait 之前有效。
type Poller interface {
	Wait(interests []Interest, timeout time.Duration) ([]Readiness, error)
}
