package logging

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestCapturingLogger(t *testing.T) {
	l := &CapturingLogger{}
	l.Debugf("dispatch %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("boom: %v", "bad")

	out := l.Output()
	assert.Len(t, out, 4)
	assert.Equal(t, []string{"dispatch 1", "hello world", "careful", "boom: bad"}, out.Messages(LevelDebug))
	assert.Equal(t, []string{"careful", "boom: bad"}, out.Messages(LevelWarn))
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard, OrDiscard(nil))

	l := &CapturingLogger{}
	assert.Equal(t, Logger(l), OrDiscard(l))
}

func TestCLILogger(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	t.Run("default hides debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewCLILogger(&buf)
		l.Debugf("hidden")
		l.Infof("shown %d", 1)
		l.Warnf("watch out")
		l.Errorf("failed")
		assert.Equal(t, "shown 1\nwarning: watch out\nerror: failed\n", buf.String())
	})

	t.Run("verbose shows debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewCLILogger(&buf)
		l.Verbose()
		l.Debugf("visible")
		assert.Equal(t, "debug: visible\n", buf.String())
	})

	t.Run("silent keeps errors", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewCLILogger(&buf)
		l.Verbose()
		l.Silence()
		l.Debugf("hidden")
		l.Infof("hidden")
		l.Warnf("hidden")
		l.Errorf("still here")
		assert.Equal(t, "error: still here\n", buf.String())
	})
}
