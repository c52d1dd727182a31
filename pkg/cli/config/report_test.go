package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/workshopsize/pkg/cli/config"
	"github.com/m-mizutani/workshopsize/pkg/controller/report"
)

func TestReport_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Report
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  config.Report{Format: "text", Sort: config.SortBySize},
		},
		{
			name: "json without sorting",
			cfg:  config.Report{Format: "json", Sort: config.SortNone},
		},
		{
			name:    "unknown format",
			cfg:     config.Report{Format: "csv", Sort: config.SortBySize},
			wantErr: true,
		},
		{
			name:    "unknown sort",
			cfg:     config.Report{Format: "text", Sort: "name"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestReport_ReportFormat(t *testing.T) {
	cfg := config.Report{Format: "TOML"}
	gt.Equal(t, cfg.ReportFormat(), report.FormatTOML)
}
