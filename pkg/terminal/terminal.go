//go:build windows

package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/derekparker/trie"
	"github.com/peterh/liner"

	"github.com/go-winmem/winmem/pkg/config"
	"github.com/go-winmem/winmem/pkg/winproc"
)

const (
	historyFile                 string = ".winmem_history"
	terminalHighlightEscapeCode string = "\033[%2dm"
	terminalResetEscapeCode     string = "\033[0m"
)

const (
	ansiBlack   = 30
	ansiRed     = 31
	ansiGreen   = 32
	ansiYellow  = 33
	ansiBlue    = 34
	ansiMagenta = 35
	ansiCyan    = 36
	ansiWhite   = 37
	ansiBrWhite = 97
)

// Term represents the terminal running the winmem inspector.
type Term struct {
	proc   *winproc.Process
	conf   *config.Config
	prompt string
	line   *liner.State
	cmds   *Commands
	dumb   bool
	stdout io.Writer

	// completions holds command aliases and the module names seen by the
	// last listing, for tab completion.
	completions *trie.Trie
}

// New returns a new Term bound to the given process.
func New(p *winproc.Process, conf *config.Config) *Term {
	cmds := InspectCommands()
	if conf != nil && conf.Aliases != nil {
		cmds.Merge(conf.Aliases)
	}

	if conf == nil {
		conf = &config.Config{}
	}
	if conf.ModuleNameColor < ansiBlack || conf.ModuleNameColor > ansiBrWhite {
		conf.ModuleNameColor = ansiYellow
	}

	var w io.Writer

	dumb := strings.ToLower(os.Getenv("TERM")) == "dumb"
	if dumb {
		w = os.Stdout
	} else {
		w = getColorableWriter()
	}

	t := &Term{
		proc:        p,
		conf:        conf,
		prompt:      "(winmem) ",
		line:        liner.NewLiner(),
		cmds:        cmds,
		dumb:        dumb,
		stdout:      w,
		completions: trie.New(),
	}
	for _, cmd := range cmds.cmds {
		for _, alias := range cmd.aliases {
			t.completions.Add(alias, nil)
		}
	}
	return t
}

// Close returns the terminal to its previous mode.
func (t *Term) Close() {
	t.line.Close()
}

// Run begins the interactive inspector loop.
func (t *Term) Run() (int, error) {
	defer t.Close()

	t.line.SetCompleter(func(line string) (c []string) {
		idx := strings.LastIndex(line, " ")
		word := line[idx+1:]
		if word == "" {
			return nil
		}
		for _, match := range t.completions.PrefixSearch(strings.ToLower(word)) {
			c = append(c, line[:idx+1]+match)
		}
		return
	})

	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Printf("Unable to load history file: %v.", err)
	}

	f, err := os.Open(fullHistoryFile)
	if err != nil {
		f, err = os.Create(fullHistoryFile)
		if err != nil {
			fmt.Printf("Unable to open history file: %v. History will not be saved for this session.", err)
		}
	}
	t.line.ReadHistory(f)
	f.Close()

	fmt.Printf("Attached to %s. Type 'help' for list of commands.\n", t.proc)

	for {
		cmdstr, err := t.promptForInput()
		if err != nil {
			if err == io.EOF {
				fmt.Println("exit")
				return t.handleExit()
			}
			if err == liner.ErrPromptAborted {
				continue
			}
			return 1, fmt.Errorf("prompt for input failed: %v", err)
		}

		if err := t.cmds.Call(cmdstr, t); err != nil {
			if _, ok := err.(ExitRequestError); ok {
				return t.handleExit()
			}
			fmt.Fprintf(os.Stderr, "Command failed: %s\n", err)
		}
	}
}

func (t *Term) promptForInput() (string, error) {
	l, err := t.line.Prompt(t.prompt)
	if err != nil {
		return "", err
	}
	l = strings.TrimSuffix(l, "\n")
	if l != "" {
		t.line.AppendHistory(l)
	}
	return l, nil
}

func (t *Term) handleExit() (int, error) {
	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err == nil {
		if f, err := os.OpenFile(fullHistoryFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600); err == nil {
			t.line.WriteHistory(f)
			f.Close()
		}
	}
	return 0, nil
}

// Println prints str to the terminal with prefix highlighted in the
// configured module name color.
func (t *Term) Println(prefix, str string) {
	if !t.dumb {
		terminalColorEscapeCode := fmt.Sprintf(terminalHighlightEscapeCode, t.conf.ModuleNameColor)
		prefix = fmt.Sprintf("%s%s%s", terminalColorEscapeCode, prefix, terminalResetEscapeCode)
	}
	fmt.Fprintf(t.stdout, "%s%s\n", prefix, str)
}

// rememberModules records module names for tab completion.
func (t *Term) rememberModules(modules []winproc.Module) {
	for _, mod := range modules {
		t.completions.Add(strings.ToLower(mod.Name), nil)
	}
}
