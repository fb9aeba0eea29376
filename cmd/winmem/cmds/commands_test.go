//go:build windows

package cmds

import (
	"strings"
	"testing"

	"github.com/go-winmem/winmem/pkg/terminal"
)

func TestCommandTree(t *testing.T) {
	root := New()
	expected := map[string]bool{
		"version": false,
		"ps":      false,
		"modules": false,
		"read":    false,
		"write":   false,
		"attach":  false,
	}
	for _, cmd := range root.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Fatalf("subcommand %q missing from command tree", name)
		}
	}
}

func TestMaxDumpSize(t *testing.T) {
	New()
	if max := maxDumpSize(); max != terminal.DefaultMaxDumpSize {
		t.Fatalf("expected default cap %d, got %d", terminal.DefaultMaxDumpSize, max)
	}

	limit := 16
	saved := conf.MaxDumpSize
	conf.MaxDumpSize = &limit
	defer func() { conf.MaxDumpSize = saved }()
	if max := maxDumpSize(); max != limit {
		t.Fatalf("expected configured cap %d, got %d", limit, max)
	}
	// The one-shot read command refuses oversized reads before it even
	// resolves the target.
	if status := readCmd([]string{"no-such-process.exe", "0x1000", "64"}); status != 1 {
		t.Fatalf("expected oversized read to fail with status 1, got %d", status)
	}
}

func TestTargetProcessParsesPid(t *testing.T) {
	// A numeric argument is treated as a pid: a pid that can't exist
	// must come back as an open failure, not a name search.
	if _, err := targetProcess("-1"); err == nil {
		t.Fatal("expected opening pid -1 to fail")
	}
}
