package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info")

	log.Info().Str("file", "wallet.json").Msg("saved")
	assert.Contains(t, buf.String(), `"message":"saved"`)
	assert.Contains(t, buf.String(), `"file":"wallet.json"`)
}

func TestNewWithWriter_Level(t *testing.T) {
	testCases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			log := NewWithWriter(&bytes.Buffer{}, tc.level)
			assert.Equal(t, tc.want, log.GetLevel())
		})
	}

	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "warn")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, "info"))

	log := FromContext(ctx)
	log.Info().Msg("test")
	assert.NotZero(t, buf.Len())

	def := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, def.GetLevel())
}
