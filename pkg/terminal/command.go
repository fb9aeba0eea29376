//go:build windows

// Package terminal implements the interactive winmem shell, responding
// to user input and dispatching to the process inspection commands.
package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cosiner/argv"

	"github.com/go-winmem/winmem/pkg/config"
	"github.com/go-winmem/winmem/pkg/logflags"
)

// DefaultMaxDumpSize is the largest read allowed when the configuration
// does not set max-dump-size.
const DefaultMaxDumpSize = 4096

type cmdfunc func(t *Term, args string) error

type command struct {
	aliases        []string
	builtinAliases []string
	helpMsg        string
	cmdFn          cmdfunc
}

// Returns true if the command string matches one of the aliases for this command
func (c command) match(cmdstr string) bool {
	for _, v := range c.aliases {
		if v == cmdstr {
			return true
		}
	}
	return false
}

// Commands represents the commands for the winmem terminal process.
type Commands struct {
	cmds []command
}

// InspectCommands returns a Commands struct with default commands defined.
func InspectCommands() *Commands {
	c := &Commands{}

	c.cmds = []command{
		{aliases: []string{"help", "h"}, cmdFn: c.help, helpMsg: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.`},
		{aliases: []string{"status", "st"}, cmdFn: status, helpMsg: `Prints the target process and the state of its handle.`},
		{aliases: []string{"modules", "mods"}, cmdFn: modules, helpMsg: `Lists the modules loaded in the target process.

	modules [<substring>]

The list is enumerated fresh on every call. With an argument only modules
whose name contains the substring are shown.`},
		{aliases: []string{"module", "mod"}, cmdFn: findModule, helpMsg: `Shows one module of the target process.

	module <name>

The name comparison is case-insensitive.`},
		{aliases: []string{"read", "x"}, cmdFn: readMemory, helpMsg: `Reads target memory and prints it as a hex dump.

	read <address> <length>

The address may be given in hex (0x prefix), octal or decimal.`},
		{aliases: []string{"write", "w"}, cmdFn: writeMemory, helpMsg: `Writes bytes into target memory.

	write <address> <byte> [<byte>...]
	write <address> "<string>"

Bytes are hexadecimal. A double-quoted argument is written as its raw
string bytes. The write fails if the region's protection forbids it;
page protection is never adjusted.`},
		{aliases: []string{"exit", "quit", "q"}, cmdFn: exitCommand, helpMsg: `Exit the inspector, releasing the process handle.`},
	}

	return c
}

// Register custom commands. Expects cf to be a func of type cmdfunc,
// returning only an error.
func (c *Commands) Register(cmdstr string, cf cmdfunc, helpMsg string) {
	for i := range c.cmds {
		if c.cmds[i].match(cmdstr) {
			c.cmds[i].cmdFn = cf
			c.cmds[i].helpMsg = helpMsg
			return
		}
	}
	c.cmds = append(c.cmds, command{aliases: []string{cmdstr}, cmdFn: cf, helpMsg: helpMsg})
}

// Find will look up the command function for the given command input.
// If it cannot find the command it will default to noCmdAvailable().
// If the command is an empty string it will replay the last command.
func (c *Commands) Find(cmdstr string) cmdfunc {
	// If <enter> use last command, if there was one.
	if cmdstr == "" {
		return nullCommand
	}

	for _, v := range c.cmds {
		if v.match(cmdstr) {
			return v.cmdFn
		}
	}

	return noCmdAvailable
}

// Call takes a command to execute.
func (c *Commands) Call(cmdstr string, t *Term) error {
	vals := strings.SplitN(strings.TrimSpace(cmdstr), " ", 2)
	cmdname := vals[0]
	var args string
	if len(vals) > 1 {
		args = strings.TrimSpace(vals[1])
	}
	logflags.TerminalLogger().Debugf("dispatching %q", cmdname)
	return c.Find(cmdname)(t, args)
}

// Merge takes aliases defined in the config struct and merges them with the default aliases.
func (c *Commands) Merge(allAliases map[string][]string) {
	for i := range c.cmds {
		if c.cmds[i].builtinAliases != nil {
			c.cmds[i].aliases = append(c.cmds[i].aliases[:0], c.cmds[i].builtinAliases...)
		}
	}
	for i := range c.cmds {
		if aliases, ok := allAliases[c.cmds[i].aliases[0]]; ok {
			if c.cmds[i].builtinAliases == nil {
				c.cmds[i].builtinAliases = make([]string, len(c.cmds[i].aliases))
				copy(c.cmds[i].builtinAliases, c.cmds[i].aliases)
			}
			c.cmds[i].aliases = append(c.cmds[i].aliases, aliases...)
		}
	}
}

var noCmdError = errors.New("command not available")

func noCmdAvailable(t *Term, args string) error {
	return noCmdError
}

func nullCommand(t *Term, args string) error {
	return nil
}

// ExitRequestError is returned from the exit command to signal that the
// inspector loop should terminate.
type ExitRequestError struct{}

func (ExitRequestError) Error() string {
	return "exit"
}

func (c *Commands) help(t *Term, args string) error {
	if args != "" {
		for _, cmd := range c.cmds {
			if cmd.match(args) {
				fmt.Fprintln(t.stdout, cmd.helpMsg)
				return nil
			}
		}
		return noCmdError
	}

	fmt.Fprintln(t.stdout, "The following commands are available:")
	w := new(tabwriter.Writer)
	w.Init(t.stdout, 0, 8, 0, '-', 0)
	for _, cmd := range c.cmds {
		h := cmd.helpMsg
		if idx := strings.Index(h, "\n"); idx >= 0 {
			h = h[:idx]
		}
		if len(cmd.aliases) > 1 {
			fmt.Fprintf(w, "    %s (alias: %s) \t %s\n", cmd.aliases[0], strings.Join(cmd.aliases[1:], " | "), h)
		} else {
			fmt.Fprintf(w, "    %s \t %s\n", cmd.aliases[0], h)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(t.stdout, "Type help followed by a command for full documentation.")
	return nil
}

func status(t *Term, args string) error {
	state := "open"
	if _, err := t.proc.Handle(); err != nil {
		state = "closed"
	}
	fmt.Fprintf(t.stdout, "%s\n\tpath:\t%s\n\thandle:\t%s\n", t.proc, t.proc.Path(), state)
	return nil
}

func modules(t *Term, args string) error {
	mods, err := t.proc.Modules()
	if err != nil {
		return err
	}
	t.rememberModules(mods)

	filter := strings.ToLower(args)
	w := new(tabwriter.Writer)
	w.Init(t.stdout, 0, 8, 1, ' ', 0)
	for _, mod := range mods {
		if filter != "" && !strings.Contains(strings.ToLower(mod.Name), filter) {
			continue
		}
		fmt.Fprintf(w, "%#016x\t%#x\t%s\t%s\n", mod.Base, mod.Size, mod.Name, mod.Path)
	}
	return w.Flush()
}

func findModule(t *Term, args string) error {
	if args == "" {
		return errors.New("not enough arguments")
	}
	mod, err := t.proc.FindModule(args)
	if err != nil {
		return err
	}
	t.Println(mod.Name, fmt.Sprintf("\tbase: %#x\tsize: %#x\tentry: %#x\n\tpath: %s", mod.Base, mod.Size, mod.EntryPoint, mod.Path))
	return nil
}

func readMemory(t *Term, args string) error {
	tokens, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(tokens) != 2 {
		return errors.New("wrong number of arguments, expected: read <address> <length>")
	}
	addr, err := parseAddr(tokens[0])
	if err != nil {
		return err
	}
	length, err := strconv.Atoi(tokens[1])
	if err != nil {
		return fmt.Errorf("invalid length: %v", err)
	}
	max := DefaultMaxDumpSize
	if t.conf.MaxDumpSize != nil {
		max = *t.conf.MaxDumpSize
	}
	if length > max {
		return fmt.Errorf("read of %d bytes exceeds max-dump-size (%d)", length, max)
	}
	buf, err := t.proc.ReadMemory(addr, length)
	if err != nil {
		return err
	}
	Hexdump(t.stdout, buf, addr)
	return nil
}

func writeMemory(t *Term, args string) error {
	vals := strings.SplitN(args, " ", 2)
	if len(vals) != 2 {
		return errors.New("wrong number of arguments, expected: write <address> <byte>... or write <address> \"<string>\"")
	}
	addr, err := parseAddr(vals[0])
	if err != nil {
		return err
	}

	var data []byte
	payload := strings.TrimSpace(vals[1])
	if strings.HasPrefix(payload, `"`) {
		fields := config.SplitQuotedFields(payload, '"')
		if len(fields) != 1 {
			return errors.New("expected a single quoted string")
		}
		data = []byte(fields[0])
	} else {
		tokens, err := parseArgs(payload)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			b, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 8)
			if err != nil {
				return fmt.Errorf("invalid byte %q: %v", tok, err)
			}
			data = append(data, byte(b))
		}
	}

	if err := t.proc.WriteMemory(addr, data); err != nil {
		return err
	}
	fmt.Fprintf(t.stdout, "wrote %d bytes at %#x\n", len(data), addr)
	return nil
}

func exitCommand(t *Term, args string) error {
	return ExitRequestError{}
}

// parseArgs tokenizes a command argument string, honoring shell-style
// quoting.
func parseArgs(args string) ([]string, error) {
	if args == "" {
		return nil, nil
	}
	v, err := argv.Argv(args,
		func(s string) (string, error) {
			return "", fmt.Errorf("backtick not supported in '%s'", s)
		},
		nil)
	if err != nil {
		return nil, err
	}
	if len(v) != 1 {
		return nil, fmt.Errorf("illegal argument list '%s'", args)
	}
	return v[0], nil
}

func parseAddr(s string) (uint64, error) {
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", s, err)
	}
	return addr, nil
}
