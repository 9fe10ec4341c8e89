package types

// CmdLine 是命令行的别名，例如: put key val -> [][]byte
// 下标 0 为命令名，区分大小写
type CmdLine [][]byte

var writeCommands = map[string]struct{}{
	"put": {},
	"del": {},
}

// Name 返回命令名，空命令行返回空串
func (c CmdLine) Name() string {
	if len(c) == 0 {
		return ""
	}
	return string(c[0])
}

func (c CmdLine) IsWrite() bool {
	_, ok := writeCommands[c.Name()]
	return ok
}
