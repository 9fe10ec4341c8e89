package protocol

import (
	"bytes"

	"github.com/pkg/errors"
)

// Reply 是所有响应的通用接口
type Reply interface {
	// ToBytes 将响应序列化为完整的响应帧，用于写入 outgoing 缓冲区
	ToBytes() []byte
}

// Response 状态码 + 命令自定义的负载
type Response struct {
	Status  Status
	Payload []byte
}

func (r *Response) ToBytes() []byte {
	buf := make([]byte, 0, HeaderSize+4+len(r.Payload))
	buf = putUint32(buf, 4+len(r.Payload))
	buf = putUint32(buf, int(r.Status))
	return append(buf, r.Payload...)
}

// 预定义的无负载回复，只读共享
var (
	okReply       = &Response{Status: StatusSuccess}
	notFoundReply = &Response{Status: StatusNotFound}
	errReply      = &Response{Status: StatusCommandError}
)

func MakeOkReply() *Response {
	return okReply
}

func MakeNotFoundReply() *Response {
	return notFoundReply
}

// MakeErrReply 未知命令或参数个数不对
func MakeErrReply() *Response {
	return errReply
}

func MakeBulkReply(payload []byte) *Response {
	return &Response{Status: StatusSuccess, Payload: payload}
}

// MakeMultiBulkReply 负载为 argc + len/bytes 列表，编码方式与请求负载相同
func MakeMultiBulkReply(items [][]byte) *Response {
	return &Response{Status: StatusSuccess, Payload: EncodeArgs(items)}
}

// IsErrorReply 辅助：检查是否是 CommandError
func IsErrorReply(r *Response) bool {
	return r.Status == StatusCommandError
}

// ParseResponse 从 buf 头部解析一个响应帧，n 的语义与 ParseRequest 相同
func ParseResponse(buf []byte, maxSize int) (resp *Response, n int, err error) {
	if len(buf) < HeaderSize {
		return nil, 0, ErrIncomplete
	}
	total := readUint32(buf)
	if uint64(total) > uint64(maxSize)+4 {
		return nil, 0, errors.Wrapf(ErrTooLarge, "declared %d bytes, limit %d", total, maxSize)
	}
	if uint64(len(buf)-HeaderSize) < uint64(total) {
		return nil, 0, ErrIncomplete
	}

	n = HeaderSize + int(total)
	resp, err = decodeResponse(buf[HeaderSize:n])
	if err != nil {
		return nil, n, err
	}
	return resp, n, nil
}

func decodeResponse(body []byte) (*Response, error) {
	if len(body) < 4 {
		return nil, errors.Wrap(ErrMalformed, "missing status code")
	}
	status := Status(readUint32(body))
	if !status.valid() {
		return nil, errors.Wrapf(ErrMalformed, "unknown status %d", uint32(status))
	}
	return &Response{
		Status:  status,
		Payload: bytes.Clone(body[4:]),
	}, nil
}
