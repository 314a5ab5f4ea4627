package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tickfsm/internal/logger"
)

type modeName string

func (m modeName) String() string { return string(m) }

func TestNew_JSONDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))

	log.Info("hello", logger.Component("game"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "game", entry["component"])
}

func TestNew_TextWithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithFormat(logger.FormatText),
		logger.WithAttr(slog.String("service", "tickfsm")),
	)

	log.Info("started", logger.Mode(modeName("explore")), logger.Seed(7))

	out := buf.String()
	assert.Contains(t, out, "service=tickfsm")
	assert.Contains(t, out, "mode=explore")
	assert.Contains(t, out, "seed=7")
}

func TestWithLevelName(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestWithLevelName_Unknown(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug), logger.WithLevelName("loud"))

	log.Debug("still debug")
	assert.Contains(t, buf.String(), "still debug")
}

func TestWithFormat_Invalid(t *testing.T) {
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestError(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
}
