package logflags

import (
	"io"
	"testing"
)

func resetFlags() {
	winproc = false
	terminal = false
}

func TestSetupParsesComponents(t *testing.T) {
	defer resetFlags()
	if err := Setup(true, "winproc,terminal", ""); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if !Winproc() {
		t.Fatal("expected winproc logging to be enabled")
	}
	if !Terminal() {
		t.Fatal("expected terminal logging to be enabled")
	}
}

func TestSetupDefaultComponent(t *testing.T) {
	defer resetFlags()
	if err := Setup(true, "", ""); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if !Winproc() {
		t.Fatal("expected winproc logging to be enabled by default")
	}
	if Terminal() {
		t.Fatal("expected terminal logging to stay disabled")
	}
}

func TestSetupOutputWithoutLog(t *testing.T) {
	defer resetFlags()
	if err := Setup(false, "winproc", ""); err != errLogstrWithoutLog {
		t.Fatalf("expected errLogstrWithoutLog, got %v", err)
	}
}

func TestMakeLoggerUsingLoggerFactory(t *testing.T) {
	defer func() {
		loggerFactory = nil
	}()

	fake := &fakeLogger{}
	SetLoggerFactory(func(flag bool, fields Fields, out io.Writer) Logger {
		if !flag {
			t.Fatalf("expected flag to be true")
		}
		if len(fields) != 1 || fields["layer"] != "winproc" {
			t.Fatalf("expected fields {'layer':'winproc'}; but was <%v>", fields)
		}
		return fake
	})

	if actual := makeLogger(true, Fields{"layer": "winproc"}); actual != fake {
		t.Fatalf("expected logger from factory; but was <%v>", actual)
	}
}

type fakeLogger struct{}

func (f *fakeLogger) WithField(key string, value interface{}) Logger { return f }
func (f *fakeLogger) WithFields(fields Fields) Logger                { return f }
func (f *fakeLogger) WithError(err error) Logger                     { return f }
func (f *fakeLogger) Debugf(format string, args ...interface{})      {}
func (f *fakeLogger) Infof(format string, args ...interface{})       {}
func (f *fakeLogger) Warnf(format string, args ...interface{})       {}
func (f *fakeLogger) Errorf(format string, args ...interface{})      {}
func (f *fakeLogger) Debug(args ...interface{})                      {}
func (f *fakeLogger) Info(args ...interface{})                       {}
func (f *fakeLogger) Warn(args ...interface{})                       {}
func (f *fakeLogger) Error(args ...interface{})                      {}
