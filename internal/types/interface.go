package types

// Database 是命令执行器依赖的键值存储能力
// 事件循环单线程驱动，实现不需要并发安全
type Database interface {
	// Get 查询 key，不存在时 ok 为 false
	Get(key string) (val string, ok bool)

	// Put 写入或覆盖 key
	Put(key string, val string)

	// Delete 删除 key，不存在时什么也不做
	Delete(key string)

	// Keys 返回全部 key，按字典序
	Keys() []string

	// Len 返回 key 数量
	Len() int
}
