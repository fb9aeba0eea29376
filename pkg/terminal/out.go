//go:build windows

package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// getColorableWriter returns a stdout writer that understands ANSI
// escape codes on the Windows console. Output that is not a terminal is
// left untouched.
func getColorableWriter() io.Writer {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

const hexdumpWidth = 16

// Hexdump prints data the way the canonical hex dump tools do: address
// column, hex bytes, printable ASCII.
func Hexdump(w io.Writer, data []byte, base uint64) {
	for i := 0; i < len(data); i += hexdumpWidth {
		row := data[i:]
		if len(row) > hexdumpWidth {
			row = row[:hexdumpWidth]
		}
		fmt.Fprintf(w, "%#016x:", base+uint64(i))
		for j := 0; j < hexdumpWidth; j++ {
			if j%8 == 0 {
				fmt.Fprint(w, " ")
			}
			if j < len(row) {
				fmt.Fprintf(w, " %02x", row[j])
			} else {
				fmt.Fprint(w, "   ")
			}
		}
		fmt.Fprint(w, "  ")
		for _, b := range row {
			if b < 32 || b > 126 {
				b = '.'
			}
			fmt.Fprintf(w, "%c", b)
		}
		fmt.Fprintln(w)
	}
}
