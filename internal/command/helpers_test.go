package command

import (
	"sort"
	"testing"

	"pollredis/pkg/protocol"
)

// MockDB 测试用的内存实现
type MockDB struct {
	data map[string]string
}

func NewMockDB() *MockDB {
	return &MockDB{
		data: make(map[string]string),
	}
}

func (m *MockDB) Get(key string) (string, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *MockDB) Put(key string, val string) {
	m.data[key] = val
}

func (m *MockDB) Delete(key string) {
	delete(m.data, key)
}

func (m *MockDB) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *MockDB) Len() int {
	return len(m.data)
}

func assertStatus(t *testing.T, reply *protocol.Response, want protocol.Status) {
	t.Helper()
	if reply.Status != want {
		t.Fatalf("expected status %s, got %s", want, reply.Status)
	}
}

func assertPayload(t *testing.T, reply *protocol.Response, want string) {
	t.Helper()
	if string(reply.Payload) != want {
		t.Fatalf("expected payload %q, got %q", want, reply.Payload)
	}
}

func toArgs(args ...string) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = []byte(a)
	}
	return out
}
