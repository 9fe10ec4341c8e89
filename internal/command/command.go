package command

import (
	"pollredis/internal/types"
	"pollredis/pkg/protocol"
)

// ExecFunc 定义每个命令的执行函数签名，args 不含命令名
type ExecFunc func(db types.Database, args [][]byte) *protocol.Response

// Command 定义了一个命令的元数据
type Command struct {
	Name     string   // 命令名称，区分大小写
	Executor ExecFunc // 执行函数
	Arity    int      // 参数个数(含命令名)，必须完全相等
}

// 全局命令注册表，只在 init 阶段写入
var cmdTable = make(map[string]*Command)

func RegisterCommand(cmd *Command) {
	cmdTable[cmd.Name] = &Command{
		Name:     cmd.Name,
		Executor: cmd.Executor,
		Arity:    cmd.Arity,
	}
}

func GetCmd(name string) (*Command, bool) {
	cmd, ok := cmdTable[name]
	return cmd, ok
}

// ValidateArity 校验参数个数
func (cmd *Command) ValidateArity(cmdLine types.CmdLine) bool {
	return len(cmdLine) == cmd.Arity
}

func execGet(db types.Database, args [][]byte) *protocol.Response {
	val, ok := db.Get(string(args[0]))
	if !ok {
		return protocol.MakeNotFoundReply()
	}
	return protocol.MakeBulkReply([]byte(val))
}

func execPut(db types.Database, args [][]byte) *protocol.Response {
	db.Put(string(args[0]), string(args[1]))
	return protocol.MakeOkReply()
}

func execDel(db types.Database, args [][]byte) *protocol.Response {
	db.Delete(string(args[0]))
	return protocol.MakeOkReply()
}

func execKeys(db types.Database, args [][]byte) *protocol.Response {
	keys := db.Keys()
	items := make([][]byte, len(keys))
	for i, key := range keys {
		items[i] = []byte(key)
	}
	return protocol.MakeMultiBulkReply(items)
}
