//go:build windows

package main

import (
	"os"

	"github.com/go-winmem/winmem/cmd/winmem/cmds"
)

func main() {
	if err := cmds.New().Execute(); err != nil {
		os.Exit(1)
	}
}
