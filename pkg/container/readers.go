package container

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/slipway-sh/slipway/pkg/logger"
)

type engineOutputExtractor func(string) engineOutput

type engineOutput interface {
	Captured() string
}

type engineOutStatus struct {
	Status string `json:"status"`
}

func (o *engineOutStatus) Captured() string {
	return o.Status
}

func engineReaderStatus() engineOutputExtractor {
	return func(raw string) engineOutput {
		out := &engineOutStatus{}
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return nil
		}
		return out
	}
}

type engineOutStream struct {
	Stream string
}

func (o *engineOutStream) Captured() string {
	return o.Stream
}

func engineReaderStream() engineOutputExtractor {
	return func(raw string) engineOutput {
		out := &engineOutStream{}
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return nil
		}
		return out
	}
}

type engineErrorLine struct {
	Error       string
	ErrorDetail engineErrorDetail
}

type engineErrorDetail struct {
	Message string
}

// processEngineOutput drains the engine's chunked json response, logging each
// captured line, and turns a trailing error line into an error.
func processEngineOutput(log logger.Logger, reader io.ReadCloser, lineReader engineOutputExtractor) error {
	defer reader.Close()

	scanner := bufio.NewScanner(reader)
	lastLine := ""
	for scanner.Scan() {
		lastLine = scanner.Text()
		printable := lineReader(lastLine)
		if printable == nil {
			continue
		}
		if captured := strings.TrimSpace(printable.Captured()); captured != "" {
			log.Debug(captured)
		}
	}

	errLine := &engineErrorLine{}
	json.Unmarshal([]byte(lastLine), errLine)
	if errLine.Error != "" {
		log.Errorf("engine finished with an error: %s", errLine.Error)
		return errors.New(errLine.Error)
	}
	if scannerErr := scanner.Err(); scannerErr != nil {
		log.Errorf("engine response scanner finished with an error: %v", scannerErr)
		return scannerErr
	}

	return nil
}
