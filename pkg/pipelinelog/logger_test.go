package pipelinelog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func newCapturingLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	l := &Logger{level: level, logger: log.New(buf, "", 0)}
	return l, buf
}

func TestLoggerRespectsLevel(t *testing.T) {
	l, buf := newCapturingLogger(WARN)
	l.Debug("should not appear")
	l.Info("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got %q", buf.String())
	}

	l.Warn("visible warning")
	if !strings.Contains(buf.String(), "visible warning") {
		t.Fatalf("expected the warning to be logged, got %q", buf.String())
	}
}

func TestLoggerFormatsWithLevelTag(t *testing.T) {
	l, buf := newCapturingLogger(DEBUG)
	l.Error("failure: %s", "disk full")
	out := buf.String()
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected an [ERROR] tag, got %q", out)
	}
	if !strings.Contains(out, "failure: disk full") {
		t.Errorf("expected the formatted message, got %q", out)
	}
}

func TestSetLevelAdjustsPackageDefault(t *testing.T) {
	SetLevel(ERROR)
	defer SetLevel(INFO)
	if defaultLogger.level != ERROR {
		t.Errorf("expected SetLevel to update the default logger's level")
	}
}
