package logger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalytics/pkg/config"
)

func TestNew(t *testing.T) {
	cfg := &config.LoggingConfig{Level: "debug"}
	log, err := New(cfg)

	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &config.LoggingConfig{Level: "shouty"}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"bogus", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, level)
			}
		})
	}
}

func TestTestLoggerCaptures(t *testing.T) {
	log := NewTestLogger()

	log.Info("fetch started")
	log.WarnWithFields("slow page", map[string]interface{}{"page": 3})
	log.WithError(errors.New("boom")).Error("fetch failed")

	messages := log.GetMessages()
	require.Len(t, messages, 3)

	assert.True(t, log.HasMessage("fetch started"))
	assert.True(t, log.HasError())

	warns := log.GetMessagesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, 3, warns[0].Fields["page"])

	errs := log.GetMessagesByLevel("ERROR")
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0].Error, "boom")
}

func TestTestLoggerChildFields(t *testing.T) {
	log := NewTestLogger()

	child := log.WithField("username", "nasa").WithField("page", 1)
	child.Info("page fetched")

	messages := log.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "nasa", messages[0].Fields["username"])
	assert.Equal(t, 1, messages[0].Fields["page"])
}

func TestTestLoggerClear(t *testing.T) {
	log := NewTestLogger()
	log.Info("one")
	log.Clear()
	assert.Empty(t, log.GetMessages())
	assert.Empty(t, log.String())
}
