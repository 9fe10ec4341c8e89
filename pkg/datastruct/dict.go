package datastruct

import (
	"slices"

	"golang.org/x/exp/maps"
)

const DefaultDictSize = 1024

// Dict 抽象接口，屏蔽底层实现细节
type Dict interface {
	Get(key string) (val string, exists bool)
	Len() int
	Put(key string, val string) (result int) // 对应 put，1 新增 0 覆盖
	Remove(key string) (result int)          // 对应 del，1 删除 0 不存在
	Keys() []string                          // 按字典序返回
}

// SimpleDict 单线程使用的 map，事件循环保证所有访问串行，因此不加锁
type SimpleDict struct {
	m map[string]string
}

func MakeSimple(size int) *SimpleDict {
	return &SimpleDict{
		m: make(map[string]string, size),
	}
}

func (dict *SimpleDict) Get(key string) (val string, exists bool) {
	val, exists = dict.m[key]
	return
}

func (dict *SimpleDict) Len() int {
	return len(dict.m)
}

func (dict *SimpleDict) Put(key string, val string) (result int) {
	_, existed := dict.m[key]
	dict.m[key] = val
	if existed {
		return 0
	}
	return 1
}

func (dict *SimpleDict) Remove(key string) (result int) {
	if _, ok := dict.m[key]; ok {
		delete(dict.m, key)
		return 1
	}
	return 0
}

func (dict *SimpleDict) Keys() []string {
	keys := maps.Keys(dict.m)
	slices.Sort(keys)
	return keys
}
