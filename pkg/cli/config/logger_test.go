package config_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/workshopsize/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{
			name:  "Valid level: debug",
			level: "debug",
		},
		{
			name:  "Valid level: DEBUG (case insensitive)",
			level: "DEBUG",
		},
		{
			name:  "Valid level: info",
			level: "info",
		},
		{
			name:  "Valid level: WARN",
			level: "WARN",
		},
		{
			name:  "Valid level: error",
			level: "error",
		},
		{
			name:    "Invalid level: invalid",
			level:   "invalid",
			wantErr: true,
		},
		{
			name:    "Invalid level: empty string",
			level:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{
				Level:  tt.level,
				Format: "console",
				Writer: &bytes.Buffer{},
			}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{
		Level:  "info",
		Format: "json",
		Writer: &buf,
	}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("test log message", "item_id", "42")
	gt.String(t, buf.String()).Contains(`"msg":"test log message"`)
	gt.String(t, buf.String()).Contains(`"item_id":"42"`)
}

func TestLogger_Configure_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{
		Level:  "warn",
		Format: "json",
		Writer: &buf,
	}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("hidden")
	result.Warn("shown")
	gt.False(t, bytes.Contains(buf.Bytes(), []byte("hidden")))
	gt.String(t, buf.String()).Contains("shown")
}

func TestLogger_Configure_ConsoleNoColorOffTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	logger := &config.Logger{
		Level:  "info",
		Format: "console",
		Writer: &buf,
	}

	result, err := logger.Configure()
	gt.NoError(t, err)

	result.Info("plain message", "item_id", "42")
	gt.String(t, buf.String()).Contains("plain message")
	gt.False(t, bytes.Contains(buf.Bytes(), []byte("\x1b[")))
}

func TestLogger_Configure_ConsoleFileWriter(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	gt.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	logger := &config.Logger{
		Level:  "info",
		Format: "console",
		Writer: f,
	}

	result, err := logger.Configure()
	gt.NoError(t, err)
	result.Warn("redirected message")

	data, err := os.ReadFile(f.Name())
	gt.NoError(t, err)
	gt.String(t, string(data)).Contains("redirected message")
	gt.False(t, bytes.Contains(data, []byte("\x1b[")))
}

func TestLogger_Configure_InvalidFormat(t *testing.T) {
	logger := &config.Logger{
		Level:  "info",
		Format: "xml",
	}

	_, err := logger.Configure()
	gt.Error(t, err)
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	gt.Equal(t, len(flags), 2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		if f, ok := flag.(interface{ Names() []string }); ok {
			if names := f.Names(); len(names) > 0 {
				flagNames[names[0]] = true
			}
		}
	}

	gt.True(t, flagNames["log-level"])
	gt.True(t, flagNames["log-format"])
}
