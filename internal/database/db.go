package database

import (
	"pollredis/internal/command"
	"pollredis/internal/types"
	"pollredis/pkg/datastruct"
	"pollredis/pkg/protocol"
)

// DB 是进程内唯一的键值存储实例，由事件循环持有并注入
type DB struct {
	data datastruct.Dict // 核心数据存储 (Key -> Value)
}

func MakeDB() *DB {
	return &DB{
		data: datastruct.MakeSimple(datastruct.DefaultDictSize),
	}
}

func (db *DB) Get(key string) (string, bool) {
	return db.data.Get(key)
}

func (db *DB) Put(key string, val string) {
	db.data.Put(key, val)
}

func (db *DB) Delete(key string) {
	db.data.Remove(key)
}

func (db *DB) Keys() []string {
	return db.data.Keys()
}

func (db *DB) Len() int {
	return db.data.Len()
}

// Exec 执行一条命令，任何输入都会得到一个响应
// 实际逻辑是：根据 command name 查表找到对应的 ExecFunc 并调用
func (db *DB) Exec(cmdLine types.CmdLine) *protocol.Response {
	if len(cmdLine) == 0 {
		return protocol.MakeErrReply()
	}

	cmd, ok := command.GetCmd(cmdLine.Name())
	if !ok {
		return protocol.MakeErrReply()
	}

	if !cmd.ValidateArity(cmdLine) {
		return protocol.MakeErrReply()
	}

	return cmd.Executor(db, cmdLine[1:])
}
