package protocol

import (
	"bytes"

	"github.com/pkg/errors"
)

// EncodeRequest 把参数列表编码成一个完整的请求帧
func EncodeRequest(args ...[]byte) []byte {
	payload := EncodeArgs(args)
	buf := make([]byte, 0, HeaderSize+len(payload))
	buf = putUint32(buf, len(payload))
	return append(buf, payload...)
}

// EncodeStrings 便于测试和 cli 使用的字符串版本
func EncodeStrings(args ...string) []byte {
	raw := make([][]byte, len(args))
	for i, arg := range args {
		raw[i] = []byte(arg)
	}
	return EncodeRequest(raw...)
}

// EncodeArgs 编码 argc + 每个参数的 len/bytes，不带帧头
func EncodeArgs(args [][]byte) []byte {
	size := 4
	for _, arg := range args {
		size += 4 + len(arg)
	}
	buf := make([]byte, 0, size)
	buf = putUint32(buf, len(args))
	for _, arg := range args {
		buf = putUint32(buf, len(arg))
		buf = append(buf, arg...)
	}
	return buf
}

// ParseRequest 尝试从 buf 头部解析一个请求帧
//
// 返回值 n 是该帧占用的总字节数:
//   - ErrIncomplete / ErrTooLarge: n 为 0，不能消费任何数据
//   - ErrMalformed: n 为整帧长度，调用方应跳过这一帧(随后关闭连接)
//   - nil: 成功，args 为拷贝，不引用 buf
func ParseRequest(buf []byte, maxSize int) (args [][]byte, n int, err error) {
	if len(buf) < HeaderSize {
		return nil, 0, ErrIncomplete
	}
	total := readUint32(buf)
	if uint64(total) > uint64(maxSize) {
		return nil, 0, errors.Wrapf(ErrTooLarge, "declared %d bytes, limit %d", total, maxSize)
	}
	if uint64(len(buf)-HeaderSize) < uint64(total) {
		return nil, 0, ErrIncomplete
	}

	n = HeaderSize + int(total)
	args, err = DecodeArgs(buf[HeaderSize:n])
	if err != nil {
		return nil, n, err
	}
	return args, n, nil
}

// DecodeArgs 解析请求负载，游标必须恰好停在负载末尾
func DecodeArgs(payload []byte) ([][]byte, error) {
	if len(payload) < 4 {
		return nil, errors.Wrap(ErrMalformed, "missing argument count")
	}
	argc := readUint32(payload)
	// 每个参数至少占 4 字节长度字段，提前拦截离谱的 argc
	if uint64(argc) > uint64(len(payload)-4)/4 {
		return nil, errors.Wrapf(ErrMalformed, "argument count %d exceeds payload", argc)
	}

	args := make([][]byte, 0, argc)
	pos := 4
	for i := uint32(0); i < argc; i++ {
		if len(payload)-pos < 4 {
			return nil, errors.Wrapf(ErrMalformed, "argument %d: truncated length", i)
		}
		size := readUint32(payload[pos:])
		pos += 4
		if uint64(size) > uint64(len(payload)-pos) {
			return nil, errors.Wrapf(ErrMalformed, "argument %d: length %d overruns payload", i, size)
		}
		args = append(args, bytes.Clone(payload[pos:pos+int(size)]))
		pos += int(size)
	}

	if pos != len(payload) {
		return nil, errors.Wrapf(ErrMalformed, "%d trailing bytes", len(payload)-pos)
	}
	return args, nil
}
