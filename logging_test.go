package lightgrid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("test", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "grid")
	l.Warnf("careful")
	l.Errorf("broken")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[test] INFO: hello grid")
	assert.Contains(t, errOut.String(), "[test] WARN: careful")
	assert.Contains(t, errOut.String(), "[test] ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "[test] DEBUG: shown 2")
}

func TestGridLogger_Tag(t *testing.T) {
	var out bytes.Buffer
	l := withGridTag(NewWriterLogger("", true, &out, &out), "0123456789abcdef")

	l.Infof("built %d", 3)
	l.Debugf("pass")
	assert.Contains(t, out.String(), "INFO: grid 01234567: built 3")
	assert.Contains(t, out.String(), "DEBUG: grid 01234567: pass")

	assert.NotNil(t, withGridTag(nil, "0123456789abcdef"))
}
