//go:build windows

// Package cmds implements the winmem command line interface.
package cmds

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/go-winmem/winmem/pkg/config"
	"github.com/go-winmem/winmem/pkg/logflags"
	"github.com/go-winmem/winmem/pkg/terminal"
	"github.com/go-winmem/winmem/pkg/version"
	"github.com/go-winmem/winmem/pkg/winproc"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path where logs should go.
	logDest string

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	conf *config.Config
)

const winmemCommandLongDesc = `winmem is an inspector for the memory of running Windows processes.

It locates a process by executable name or pid, lists the modules loaded
into its address space and reads or writes ranges of its memory. Targets
are addressed by name (notepad.exe) or by pid.

winmem opens its target with read and write access when it can and falls
back to a read-only handle when write access is refused; in that case
write operations fail with an access denied error.`

// New returns an initialized command tree.
func New() *cobra.Command {
	// Config setup and load.
	conf = config.LoadConfig()

	rootCommand = &cobra.Command{
		Use:   "winmem",
		Short: "winmem is an inspector for the memory of running Windows processes.",
		Long:  winmemCommandLongDesc,
	}
	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable debug logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", "Comma separated list of components that should produce debug output (winproc,terminal).")
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file instead of standard error.")

	// 'version' subcommand.
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("winmem\n%s\n%s\n", version.WinmemVersion, version.BuildInfo())
		},
	}
	rootCommand.AddCommand(versionCommand)

	// 'ps' subcommand.
	psCommand := &cobra.Command{
		Use:   "ps",
		Short: "Lists running processes.",
		Long: `Lists every running process the current user can open, one line per
process with pid, executable name and image path. Processes that refuse a
query handle are omitted.`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(psCmd())
		},
	}
	rootCommand.AddCommand(psCommand)

	// 'modules' subcommand.
	modulesCommand := &cobra.Command{
		Use:   "modules <process>",
		Short: "Lists the modules loaded in a process.",
		Long: `Lists the modules currently loaded in the target process's address
space, in OS load order: base address, size, name and image path. The
first module is normally the main executable image.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(modulesCmd(args))
		},
	}
	rootCommand.AddCommand(modulesCommand)

	// 'read' subcommand.
	readCommand := &cobra.Command{
		Use:   "read <process> <address> <length>",
		Short: "Reads a range of a process's memory.",
		Long: `Reads length bytes of the target process's memory starting at the
given address and prints them as a hex dump. A range that is partially
unmapped or protected fails, reporting how many bytes were transferred.`,
		Args: cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(readCmd(args))
		},
	}
	rootCommand.AddCommand(readCommand)

	// 'write' subcommand.
	writeCommand := &cobra.Command{
		Use:   "write <process> <address> <byte>...",
		Short: "Writes bytes into a process's memory.",
		Long: `Writes the given hexadecimal bytes into the target process's memory at
the given address. Page protection is never adjusted: writing into a
read-only region fails.`,
		Args: cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(writeCmd(args))
		},
	}
	rootCommand.AddCommand(writeCommand)

	// 'attach' subcommand.
	attachCommand := &cobra.Command{
		Use:   "attach <process>",
		Short: "Opens an interactive inspector on a process.",
		Long: `Opens a handle to the target process and starts an interactive
terminal with commands for listing modules and reading and writing
memory. The handle is released when the terminal exits.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(attachCmd(args))
		},
	}
	rootCommand.AddCommand(attachCommand)

	return rootCommand
}

func psCmd() int {
	if err := logflags.Setup(log, logOutput, logDest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logflags.Close()

	infos, err := winproc.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	w := new(tabwriter.Writer)
	w.Init(os.Stdout, 0, 8, 1, ' ', 0)
	for _, info := range infos {
		fmt.Fprintf(w, "%d\t%s\t%s\n", info.Pid, info.Name, info.Path)
	}
	w.Flush()
	return 0
}

func modulesCmd(args []string) int {
	if err := logflags.Setup(log, logOutput, logDest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logflags.Close()

	p, err := targetProcess(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer p.Close()

	modules, err := p.Modules()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	w := new(tabwriter.Writer)
	w.Init(os.Stdout, 0, 8, 1, ' ', 0)
	for _, mod := range modules {
		fmt.Fprintf(w, "%#016x\t%#x\t%s\t%s\n", mod.Base, mod.Size, mod.Name, mod.Path)
	}
	w.Flush()
	return 0
}

func readCmd(args []string) int {
	if err := logflags.Setup(log, logOutput, logDest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logflags.Close()

	addr, err := parseAddr(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	length, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid length: %v\n", err)
		return 1
	}
	if max := maxDumpSize(); length > max {
		fmt.Fprintf(os.Stderr, "read of %d bytes exceeds max-dump-size (%d)\n", length, max)
		return 1
	}

	p, err := targetProcess(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer p.Close()

	buf, err := p.ReadMemory(addr, length)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	terminal.Hexdump(os.Stdout, buf, addr)
	return 0
}

func writeCmd(args []string) int {
	if err := logflags.Setup(log, logOutput, logDest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logflags.Close()

	addr, err := parseAddr(args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data := make([]byte, 0, len(args)-2)
	for _, tok := range args[2:] {
		b, err := strconv.ParseUint(strings.TrimPrefix(tok, "0x"), 16, 8)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid byte %q: %v\n", tok, err)
			return 1
		}
		data = append(data, byte(b))
	}

	p, err := targetProcess(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer p.Close()

	if err := p.WriteMemory(addr, data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %d bytes at %#x\n", len(data), addr)
	return 0
}

func attachCmd(args []string) int {
	if err := logflags.Setup(log, logOutput, logDest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logflags.Close()

	p, err := targetProcess(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer p.Close()

	status, err := terminal.New(p, conf).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return status
}

// maxDumpSize returns the largest read the 'read' subcommand accepts,
// from the loaded configuration when it sets max-dump-size.
func maxDumpSize() int {
	if conf != nil && conf.MaxDumpSize != nil {
		return *conf.MaxDumpSize
	}
	return terminal.DefaultMaxDumpSize
}

// targetProcess resolves a command line target: a pid if the argument is
// numeric, an executable name otherwise.
func targetProcess(arg string) (*winproc.Process, error) {
	if pid, err := strconv.Atoi(arg); err == nil {
		return winproc.Open(pid)
	}
	return winproc.Find(arg)
}

func parseAddr(s string) (uint64, error) {
	addr, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %v", s, err)
	}
	return addr, nil
}
