package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollredis/internal/types"
	"pollredis/pkg/protocol"
)

func line(args ...string) types.CmdLine {
	out := make(types.CmdLine, len(args))
	for i, a := range args {
		out[i] = []byte(a)
	}
	return out
}

func TestDB_Exec(t *testing.T) {
	db := MakeDB()

	steps := []struct {
		name    string
		cmd     types.CmdLine
		status  protocol.Status
		payload string
	}{
		{"get_missing", line("get", "k"), protocol.StatusNotFound, ""},
		{"put", line("put", "k", "v"), protocol.StatusSuccess, ""},
		{"get_after_put", line("get", "k"), protocol.StatusSuccess, "v"},
		{"overwrite", line("put", "k", "v2"), protocol.StatusSuccess, ""},
		{"get_overwritten", line("get", "k"), protocol.StatusSuccess, "v2"},
		{"del", line("del", "k"), protocol.StatusSuccess, ""},
		{"get_after_del", line("get", "k"), protocol.StatusNotFound, ""},
		{"del_missing", line("del", "k"), protocol.StatusSuccess, ""},
	}

	for _, s := range steps {
		reply := db.Exec(s.cmd)
		assert.Equal(t, s.status, reply.Status, s.name)
		assert.Equal(t, s.payload, string(reply.Payload), s.name)
	}
}

func TestDB_ExecErrors(t *testing.T) {
	db := MakeDB()
	db.Put("a", "1")

	tests := []struct {
		name string
		cmd  types.CmdLine
	}{
		{"empty", types.CmdLine{}},
		{"nil", nil},
		{"get_no_key", line("get")},
		{"get_too_many", line("get", "a", "b")},
		{"put_missing_value", line("put", "a")},
		{"put_too_many", line("put", "a", "b", "c")},
		{"del_no_key", line("del")},
		{"keys_with_arg", line("keys", "*")},
		{"unknown", line("set", "a", "1")},
		{"case_sensitive", line("GET", "a")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			reply := db.Exec(tc.cmd)
			assert.Equal(t, protocol.StatusCommandError, reply.Status)
			assert.Empty(t, reply.Payload)
		})
	}

	val, ok := db.Get("a")
	require.True(t, ok, "failed commands must not touch the store")
	assert.Equal(t, "1", val)
}

func TestDB_Keys(t *testing.T) {
	db := MakeDB()
	db.Exec(line("put", "b", "2"))
	db.Exec(line("put", "a", "1"))

	reply := db.Exec(line("keys"))
	require.Equal(t, protocol.StatusSuccess, reply.Status)

	keys, err := protocol.DecodeArgs(reply.Payload)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, keys)
	assert.Equal(t, 2, db.Len())
}

func TestDB_Isolated(t *testing.T) {
	a, b := MakeDB(), MakeDB()
	a.Put("k", "v")

	_, ok := b.Get("k")
	assert.False(t, ok)
}
