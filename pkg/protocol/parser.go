package protocol

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Parser 从阻塞的字节流里逐帧读取，供客户端和测试使用
type Parser struct {
	r       *bufio.Reader
	maxSize int
}

func NewParser(reader io.Reader) *Parser {
	return NewParserSize(reader, MaxMessageSize)
}

// NewParserSize maxSize 为负载上限，keys 这类按数据量增长的响应可能需要调大
func NewParserSize(reader io.Reader, maxSize int) *Parser {
	return &Parser{
		r:       bufio.NewReader(reader),
		maxSize: maxSize,
	}
}

// ParseResponse 读取一个完整的响应帧
func (p *Parser) ParseResponse() (*Response, error) {
	body, err := p.readFrame(p.maxSize + 4)
	if err != nil {
		return nil, err
	}
	return decodeResponse(body)
}

func (p *Parser) readFrame(limit int) ([]byte, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(p.r, header[:]); err != nil {
		return nil, err
	}
	total := readUint32(header[:])
	if uint64(total) > uint64(limit) {
		return nil, errors.Wrapf(ErrTooLarge, "declared %d bytes, limit %d", total, limit)
	}

	body := make([]byte, total)
	if _, err := io.ReadFull(p.r, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return body, nil
}
