package datastruct

import "fmt"

// ByteBuffer 支持尾部追加、头部消费的字节缓冲区
// 读偏移 off 之前的数据视为已消费，空间在 compact 时回收
type ByteBuffer struct {
	buf []byte
	off int
}

func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{buf: make([]byte, 0, size)}
}

// Append 在尾部追加数据
func (b *ByteBuffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	// 剩余容量不够时，优先把未消费的数据挪到头部，再考虑扩容
	if b.off > 0 && len(b.buf)+len(p) > cap(b.buf) {
		b.compact()
	}
	b.buf = append(b.buf, p...)
}

// Consume 丢弃头部 n 个字节，n 超过长度属于调用方错误
func (b *ByteBuffer) Consume(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("bytebuffer: consume %d out of range [0, %d]", n, b.Len()))
	}
	b.off += n
	if b.off == len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
		return
	}
	if b.off > cap(b.buf)/2 {
		b.compact()
	}
}

// Bytes 返回未消费的数据，下一次 Append/Consume 之前有效
func (b *ByteBuffer) Bytes() []byte {
	return b.buf[b.off:]
}

func (b *ByteBuffer) Len() int {
	return len(b.buf) - b.off
}

func (b *ByteBuffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

func (b *ByteBuffer) compact() {
	n := copy(b.buf, b.buf[b.off:])
	b.buf = b.buf[:n]
	b.off = 0
}
