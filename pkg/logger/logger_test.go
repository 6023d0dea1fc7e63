package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerReturnsRegisteredInstance(t *testing.T) {
	first := NewLogger("slipway.test.registry")
	second := NewLogger("slipway.test.registry")

	assert.Same(t, first, second)
}

func TestJsonOutputSchema(t *testing.T) {
	log := NewLogger("slipway.test.json")

	var out bytes.Buffer
	log.SetOutput(&out)
	log.EnableJsonOutput(true)

	log.WithFields(map[string]any{"image-tag": "slipway/app:latest"}).Info("image built")

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "slipway.test.json", line["scope"])
	assert.Equal(t, "image built", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "slipway/app:latest", line["image-tag"])
}

func TestIsLogLevelEnabled(t *testing.T) {
	log := NewLogger("slipway.test.level")
	log.SetLogLevel(InfoLevel)

	assert.True(t, log.IsLogLevelEnabled(ErrorLevel))
	assert.False(t, log.IsLogLevelEnabled(DebugLevel))
}
