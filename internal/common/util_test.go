package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCommon_All(t *testing.T) {
	t.Run("ToCmdLine", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
			want  [][]byte
		}{
			{"empty_str", "", [][]byte{}},
			{"blank_str", "   \t ", [][]byte{}},
			{"normal_str", "get a", [][]byte{[]byte("get"), []byte("a")}},
			{"extra_spaces", "  put  k   v ", [][]byte{[]byte("put"), []byte("k"), []byte("v")}},
		}
		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				got := ToCmdLine(tc.input)
				if !bytesSliceEqual(got, tc.want) {
					t.Errorf("ToCmdLine() = %q, want %q", got, tc.want)
				}
			})
		}
	})

	t.Run("FormatCmdLine", func(t *testing.T) {
		tests := []struct {
			name  string
			input [][]byte
			want  string
		}{
			{"empty", nil, ""},
			{"plain", [][]byte{[]byte("put"), []byte("k"), []byte("v")}, `"put" "k" "v"`},
			{"binary", [][]byte{{0x00, '\n'}}, `"\x00\n"`},
			{"truncated", [][]byte{bytes.Repeat([]byte("a"), 40)}, `"` + strings.Repeat("a", 32) + `"...`},
		}
		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, FormatCmdLine(tc.input))
			})
		}
	})

	t.Run("CmdLineField", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		zap.New(core).Debug("exec", CmdLineField([][]byte{[]byte("get"), []byte("x")}))

		entries := logs.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, `"get" "x"`, entries[0].ContextMap()["cmd"])
		}
	})
}

// ---------------- 辅助 ----------------
func bytesSliceEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
