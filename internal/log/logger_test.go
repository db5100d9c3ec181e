package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "debug", "json", true)
	assert.Equal(t, l.Level, logrus.DebugLevel)

	l.WithField("column", "age").Debugln("figure saved")
	var entry map[string]interface{}
	assert.NilError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, entry["column"], "age")
	assert.Equal(t, entry["msg"], "figure saved")
	_, hasTime := entry["time"]
	assert.Assert(t, !hasTime)
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	l := NewLogger("loud", "TEXT", false)
	assert.Equal(t, l.Level, logrus.InfoLevel)
	_, ok := l.Formatter.(*logrus.TextFormatter)
	assert.Assert(t, ok)
}
