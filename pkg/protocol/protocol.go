// Package protocol 实现长度前缀的二进制请求/响应协议
//
// 请求帧:  u32le total | u32le argc | (u32le len | bytes) * argc
// 响应帧:  u32le total | u32le status | payload      (total = 4 + len(payload))
//
// 所有整数均为小端 32 位。
package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	// HeaderSize 帧头(长度字段)字节数
	HeaderSize = 4
	// MaxMessageSize 单帧负载上限 32MiB
	MaxMessageSize = 32 << 20
)

var (
	// ErrIncomplete 缓冲区里还没有一个完整帧，不是错误，等更多数据再试
	ErrIncomplete = errors.New("protocol: incomplete frame")
	// ErrTooLarge 声明的帧长度超过上限，连接必须关闭
	ErrTooLarge = errors.New("protocol: message too large")
	// ErrMalformed 帧长度已知但内容不合法(参数越界/尾部多余字节)
	ErrMalformed = errors.New("protocol: malformed frame")
)

// Status 响应状态码，数值属于线上协议，不能改动
type Status uint32

const (
	StatusNotFound     Status = 0
	StatusSuccess      Status = 1
	StatusCommandError Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusSuccess:
		return "OK"
	case StatusCommandError:
		return "ERR"
	default:
		return fmt.Sprintf("STATUS(%d)", uint32(s))
	}
}

func (s Status) valid() bool {
	return s <= StatusCommandError
}

func putUint32(dst []byte, v int) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func readUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
