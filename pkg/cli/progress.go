package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/schollz/progressbar/v3"
)

// progressBar renders item sizing progress. The bar is created on the first
// hook call because the item count is unknown until the collection is resolved.
type progressBar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w}
}

// Hook advances the bar by one item
func (p *progressBar) Hook(ctx context.Context, index, total int, item model.Item) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription("Sizing items"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = p.bar.Add(1)
}

// Close finishes the bar if one was started. It is safe on a nil receiver.
func (p *progressBar) Close() {
	if p != nil && p.bar != nil {
		_ = p.bar.Finish()
	}
}
