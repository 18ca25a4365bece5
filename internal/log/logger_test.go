package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		expected logrus.Level
	}{
		{name: "quiet", verbose: false, expected: logrus.WarnLevel},
		{name: "verbose", verbose: true, expected: logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, tt.verbose)
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNew_QuietSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("refreshing check")
	logger.Info("fetched result")

	assert.Empty(t, buf.String())
}

func TestNew_VerboseWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.WithField("check_id", "8CNsSllI5v").Debug("refreshing check")

	assert.Contains(t, buf.String(), "refreshing check")
	assert.Contains(t, buf.String(), "check_id=8CNsSllI5v")
	assert.Contains(t, buf.String(), "level=debug")
}
