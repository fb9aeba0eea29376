//go:build windows

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-winmem/winmem/pkg/config"
)

func testTerm() (*Term, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Term{
		cmds:   InspectCommands(),
		conf:   &config.Config{},
		stdout: &buf,
		dumb:   true,
	}, &buf
}

func TestCallUnknownCommand(t *testing.T) {
	term, _ := testTerm()
	if err := term.cmds.Call("frobnicate", term); err != noCmdError {
		t.Fatalf("expected noCmdError, got %v", err)
	}
}

func TestCallEmptyLine(t *testing.T) {
	term, _ := testTerm()
	if err := term.cmds.Call("", term); err != nil {
		t.Fatalf("expected empty line to be a no-op, got %v", err)
	}
}

func TestHelpListsCommands(t *testing.T) {
	term, buf := testTerm()
	if err := term.cmds.Call("help", term); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	out := buf.String()
	for _, name := range []string{"modules", "read", "write", "exit"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help output missing command %q:\n%s", name, out)
		}
	}
}

func TestHelpSingleCommand(t *testing.T) {
	term, buf := testTerm()
	if err := term.cmds.Call("help read", term); err != nil {
		t.Fatalf("help read failed: %v", err)
	}
	if !strings.Contains(buf.String(), "read <address> <length>") {
		t.Fatalf("unexpected help output:\n%s", buf.String())
	}
}

func TestExitCommand(t *testing.T) {
	term, _ := testTerm()
	err := term.cmds.Call("quit", term)
	if _, ok := err.(ExitRequestError); !ok {
		t.Fatalf("expected ExitRequestError, got %v", err)
	}
}

func TestMergeAliases(t *testing.T) {
	cmds := InspectCommands()
	cmds.Merge(map[string][]string{"modules": {"lsmod"}})
	if fn := cmds.Find("lsmod"); fn == nil {
		t.Fatal("expected merged alias to resolve")
	}
	found := false
	for _, cmd := range cmds.cmds {
		if cmd.match("lsmod") && cmd.match("modules") {
			found = true
		}
	}
	if !found {
		t.Fatal("alias lsmod not attached to the modules command")
	}

	// merging again must not duplicate the alias
	cmds.Merge(map[string][]string{"modules": {"lsmod"}})
	count := 0
	for _, cmd := range cmds.cmds {
		for _, alias := range cmd.aliases {
			if alias == "lsmod" {
				count++
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one lsmod alias, got %d", count)
	}
}

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in       string
		expected uint64
		wantErr  bool
	}{
		{"0x7FF600000000", 0x7ff600000000, false},
		{"4096", 4096, false},
		{"0o777", 0o777, false},
		{"banana", 0, true},
		{"", 0, true},
	}
	for _, test := range tests {
		got, err := parseAddr(test.in)
		if test.wantErr {
			if err == nil {
				t.Fatalf("parseAddr(%q): expected error, got %#x", test.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAddr(%q) failed: %v", test.in, err)
		}
		if got != test.expected {
			t.Fatalf("parseAddr(%q): expected %#x, got %#x", test.in, test.expected, got)
		}
	}
}

func TestParseArgs(t *testing.T) {
	tokens, err := parseArgs(`0x1000 12 'quoted arg'`)
	if err != nil {
		t.Fatalf("parseArgs failed: %v", err)
	}
	expected := []string{"0x1000", "12", "quoted arg"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %#v, got %#v", expected, tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Fatalf("expected %#v, got %#v (mismatch at %d)", expected, tokens, i)
		}
	}

	if tokens, err := parseArgs(""); err != nil || tokens != nil {
		t.Fatalf("expected empty parse, got %#v, %v", tokens, err)
	}
}

func TestHexdump(t *testing.T) {
	var buf bytes.Buffer
	data := []byte("Hello, winmem!\x00\xff\x01")
	Hexdump(&buf, data, 0x7ff600000000)

	out := buf.String()
	if !strings.Contains(out, "0x007ff600000000:") {
		t.Fatalf("missing base address column:\n%s", out)
	}
	if !strings.Contains(out, "48 65 6c 6c 6f") {
		t.Fatalf("missing hex bytes:\n%s", out)
	}
	if !strings.Contains(out, "Hello, winmem!..") {
		t.Fatalf("missing ascii column:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Fatalf("expected 2 dump rows for %d bytes, got %d", len(data), lines)
	}
}
