package common

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// maxLoggedArg 日志里单个参数最多保留的字节数
const maxLoggedArg = 32

// ToCmdLine 把 cli 输入按空白拆成命令行
func ToCmdLine(line string) [][]byte {
	fields := strings.Fields(line)
	cmd := make([][]byte, len(fields))
	for i, v := range fields {
		cmd[i] = []byte(v)
	}
	return cmd
}

// FormatCmdLine 把命令行格式化成可读字符串，二进制内容会被转义，过长参数会被截断
func FormatCmdLine(content [][]byte) string {
	sb := strings.Builder{}
	for i, v := range content {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if len(v) > maxLoggedArg {
			sb.WriteString(strconv.Quote(string(v[:maxLoggedArg])))
			sb.WriteString("...")
			continue
		}
		sb.WriteString(strconv.Quote(string(v)))
	}
	return sb.String()
}

// CmdLineField 日志字段，只在 debug 级别真正格式化
func CmdLineField(content [][]byte) zap.Field {
	return zap.Stringer("cmd", cmdLineStringer(content))
}

type cmdLineStringer [][]byte

func (c cmdLineStringer) String() string {
	return FormatCmdLine(c)
}
