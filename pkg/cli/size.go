package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/cli/config"
	"github.com/m-mizutani/workshopsize/pkg/controller/report"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/usecase"
	"github.com/m-mizutani/workshopsize/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// runSize resolves the collection given as the only argument and prints its report
func runSize(ctx context.Context, c *cli.Command, rc *runConfig, steamCfg *config.Steam, reportCfg *config.Report) error {
	if c.NArg() != 1 {
		return goerr.New("exactly one collection URL is required", goerr.V("args", c.Args().Slice()))
	}
	if err := reportCfg.Validate(); err != nil {
		return err
	}

	client, err := steamCfg.NewClient()
	if err != nil {
		return goerr.Wrap(err, "failed to create steam client")
	}

	opts := []usecase.CollectionOption{
		usecase.WithSortBySize(reportCfg.Sort == config.SortBySize),
	}
	var bar *progressBar
	if !reportCfg.Quiet {
		bar = newProgressBar(rc.stderr)
		opts = append(opts, usecase.WithItemHook(bar.Hook))
	}

	summary, err := usecase.NewCollection(client, opts...).Aggregate(ctx, c.Args().First())
	bar.Close()
	if err != nil {
		return err
	}

	format := reportCfg.ReportFormat()
	renderer := report.NewRenderer(format, report.WithColor(!color.NoColor))
	if err := renderer.Render(rc.stdout, summary); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}

	if reportCfg.Output != "" {
		if err := saveReport(reportCfg.Output, format, summary); err != nil {
			return err
		}
		logging.From(ctx).Info("Report saved", "path", reportCfg.Output)
	}

	return nil
}

func saveReport(path string, format report.Format, summary *model.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create report file", goerr.V("path", path))
	}

	if err := report.NewRenderer(format).Render(f, summary); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write report file", goerr.V("path", path))
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close report file", goerr.V("path", path))
	}
	return nil
}
