package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/controller/report"
	"github.com/urfave/cli/v3"
)

const (
	SortBySize = "size"
	SortNone   = "none"
)

// Report holds report output configuration
type Report struct {
	Format  string
	Output  string
	Sort    string
	Quiet   bool
	NoColor bool
}

// Flags returns CLI flags for report configuration
func (c *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Report format (text, json, toml)",
			Value:       string(report.FormatText),
			Destination: &c.Format,
			Sources:     cli.EnvVars("WORKSHOPSIZE_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Also write the report to this file",
			Destination: &c.Output,
			Sources:     cli.EnvVars("WORKSHOPSIZE_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "Item order in the report (size, none)",
			Value:       SortBySize,
			Destination: &c.Sort,
			Sources:     cli.EnvVars("WORKSHOPSIZE_SORT"),
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "Do not show the progress bar",
			Destination: &c.Quiet,
			Sources:     cli.EnvVars("WORKSHOPSIZE_QUIET"),
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Destination: &c.NoColor,
			Sources:     cli.EnvVars("WORKSHOPSIZE_NO_COLOR"),
		},
	}
}

// Validate checks the configured values
func (c *Report) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Sort != SortBySize && c.Sort != SortNone {
		return goerr.New("invalid sort order", goerr.V("sort", c.Sort))
	}
	return nil
}

// ReportFormat returns the parsed report format
func (c *Report) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Format)
	return f
}
