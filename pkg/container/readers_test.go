package container

import (
	"io"
	"strings"
	"testing"

	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLog = logger.NewLogger("slipway.container.test")

func TestProcessEngineOutputStream(t *testing.T) {
	response := strings.Join([]string{
		`{"stream":"Step 1/7 : FROM python:3.11-slim"}`,
		`{"stream":" ---> 4712cafebabe"}`,
		`{"stream":"Successfully built 4712cafebabe"}`,
	}, "\n")

	err := processEngineOutput(testLog, io.NopCloser(strings.NewReader(response)), engineReaderStream())
	require.NoError(t, err)
}

func TestProcessEngineOutputTrailingError(t *testing.T) {
	response := strings.Join([]string{
		`{"stream":"Step 4/7 : RUN pip install --no-cache-dir -r requirements.txt"}`,
		`{"error":"executor failed running","errorDetail":{"message":"executor failed running"}}`,
	}, "\n")

	err := processEngineOutput(testLog, io.NopCloser(strings.NewReader(response)), engineReaderStream())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executor failed running")
}

func TestProcessEngineOutputEmpty(t *testing.T) {
	err := processEngineOutput(testLog, io.NopCloser(strings.NewReader("")), engineReaderStatus())
	assert.NoError(t, err)
}
