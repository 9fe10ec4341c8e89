package command

import (
	"testing"

	"pollredis/internal/types"
	"pollredis/pkg/protocol"
)

func TestExecGet(t *testing.T) {
	db := NewMockDB()
	db.Put("k1", "v1")
	db.Put("empty", "")

	t.Run("existing key", func(t *testing.T) {
		reply := execGet(db, toArgs("k1"))
		assertStatus(t, reply, protocol.StatusSuccess)
		assertPayload(t, reply, "v1")
	})

	t.Run("empty value is still found", func(t *testing.T) {
		reply := execGet(db, toArgs("empty"))
		assertStatus(t, reply, protocol.StatusSuccess)
		assertPayload(t, reply, "")
	})

	t.Run("missing key", func(t *testing.T) {
		reply := execGet(db, toArgs("nokey"))
		assertStatus(t, reply, protocol.StatusNotFound)
		assertPayload(t, reply, "")
	})
}

func TestExecPut(t *testing.T) {
	db := NewMockDB()

	t.Run("insert", func(t *testing.T) {
		reply := execPut(db, toArgs("k", "v"))
		assertStatus(t, reply, protocol.StatusSuccess)
		assertPayload(t, reply, "")
		if val, _ := db.Get("k"); val != "v" {
			t.Errorf("expected v, got %q", val)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		execPut(db, toArgs("k", "v2"))
		if val, _ := db.Get("k"); val != "v2" {
			t.Errorf("expected v2, got %q", val)
		}
		if db.Len() != 1 {
			t.Errorf("expected 1 key, got %d", db.Len())
		}
	})

	t.Run("binary value", func(t *testing.T) {
		execPut(db, [][]byte{[]byte("bin"), {0x00, 0xff}})
		reply := execGet(db, toArgs("bin"))
		assertPayload(t, reply, "\x00\xff")
	})
}

func TestExecDel(t *testing.T) {
	db := NewMockDB()
	db.Put("k1", "v1")
	db.Put("k2", "v2")

	t.Run("delete existing key", func(t *testing.T) {
		reply := execDel(db, toArgs("k1"))
		assertStatus(t, reply, protocol.StatusSuccess)
		if _, ok := db.Get("k1"); ok {
			t.Error("k1 should be deleted")
		}
		if _, ok := db.Get("k2"); !ok {
			t.Error("k2 should still exist")
		}
	})

	t.Run("delete missing key is a no-op", func(t *testing.T) {
		reply := execDel(db, toArgs("k99"))
		assertStatus(t, reply, protocol.StatusSuccess)
		if db.Len() != 1 {
			t.Errorf("expected 1 key, got %d", db.Len())
		}
	})
}

func TestExecKeys(t *testing.T) {
	db := NewMockDB()

	reply := execKeys(db, nil)
	assertStatus(t, reply, protocol.StatusSuccess)
	items, err := protocol.DecodeArgs(reply.Payload)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %q (%v)", items, err)
	}

	db.Put("b", "2")
	db.Put("a", "1")
	reply = execKeys(db, nil)
	items, err = protocol.DecodeArgs(reply.Payload)
	if err != nil {
		t.Fatalf("decode keys: %v", err)
	}
	if len(items) != 2 || string(items[0]) != "a" || string(items[1]) != "b" {
		t.Errorf("unexpected keys %q", items)
	}
}

func TestCommandTable(t *testing.T) {
	tests := []struct {
		name   string
		arity  int
		exists bool
	}{
		{"get", 2, true},
		{"put", 3, true},
		{"del", 2, true},
		{"keys", 1, true},
		{"GET", 0, false},
		{"set", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := GetCmd(tc.name)
			if ok != tc.exists {
				t.Fatalf("GetCmd(%q) exists = %v, want %v", tc.name, ok, tc.exists)
			}
			if ok && cmd.Arity != tc.arity {
				t.Errorf("arity = %d, want %d", cmd.Arity, tc.arity)
			}
		})
	}
}

func TestValidateArity(t *testing.T) {
	cmd, _ := GetCmd("get")
	cases := []struct {
		line types.CmdLine
		want bool
	}{
		{types.CmdLine(toArgs("get")), false},
		{types.CmdLine(toArgs("get", "a")), true},
		{types.CmdLine(toArgs("get", "a", "b")), false},
	}
	for _, c := range cases {
		if got := cmd.ValidateArity(c.line); got != c.want {
			t.Errorf("ValidateArity(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}
