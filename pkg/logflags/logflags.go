package logflags

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var winproc = false
var terminal = false

var logOut io.WriteCloser

func makeLogger(flag bool, fields Fields) Logger {
	if loggerFactory != nil {
		return loggerFactory(flag, fields, logOut)
	}
	logger := logrus.New().WithFields(logrus.Fields(fields))
	logger.Logger.Formatter = &logrus.TextFormatter{DisableColors: true}
	if logOut != nil {
		logger.Logger.Out = logOut
	}
	logger.Logger.Level = logrus.DebugLevel
	if !flag {
		logger.Logger.Level = logrus.PanicLevel
	}
	return &logrusLogger{logger}
}

// Winproc returns true if the winproc package should log the candidates
// it skips while scanning and enumerating.
func Winproc() bool {
	return winproc
}

// WinprocLogger returns a logger for the winproc package.
func WinprocLogger() Logger {
	return makeLogger(winproc, Fields{"layer": "winproc"})
}

// Terminal returns true if the interactive terminal should log command
// dispatch.
func Terminal() bool {
	return terminal
}

// TerminalLogger returns a logger for the terminal package.
func TerminalLogger() Logger {
	return makeLogger(terminal, Fields{"layer": "terminal"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets the logging flags based on the contents of logstr. If
// logDest is non-empty logs are appended to that file instead of
// standard error.
func Setup(logFlag bool, logstr, logDest string) error {
	if logDest != "" {
		fh, err := os.OpenFile(logDest, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("could not open log destination: %v", err)
		}
		logOut = fh
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(ioutil.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "winproc"
	}
	for _, logcmd := range strings.Split(logstr, ",") {
		switch logcmd {
		case "winproc":
			winproc = true
		case "terminal":
			terminal = true
		}
	}
	return nil
}

// Close closes the logger output file, if one was set up by Setup.
func Close() {
	if logOut != nil {
		logOut.Close()
		logOut = nil
	}
}
