package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/domain/interfaces"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
	"github.com/m-mizutani/workshopsize/pkg/utils/logging"
	"github.com/m-mizutani/workshopsize/pkg/utils/units"
)

// ItemHook is called after each item has been sized, including failed ones
type ItemHook func(ctx context.Context, index, total int, item model.Item)

type collectionUseCase struct {
	steam      interfaces.SteamClient
	sortBySize bool
	hooks      []ItemHook
}

// CollectionOption is a functional option for the collection use case
type CollectionOption func(*collectionUseCase)

// WithSortBySize orders the resulting items by size, largest first
func WithSortBySize(enabled bool) CollectionOption {
	return func(uc *collectionUseCase) {
		uc.sortBySize = enabled
	}
}

// WithItemHook registers a callback invoked for every sized item
func WithItemHook(hook ItemHook) CollectionOption {
	return func(uc *collectionUseCase) {
		uc.hooks = append(uc.hooks, hook)
	}
}

// NewCollection creates a new instance of CollectionUseCase
func NewCollection(steam interfaces.SteamClient, opts ...CollectionOption) interfaces.CollectionUseCase {
	uc := &collectionUseCase{
		steam: steam,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Aggregate resolves the collection and sums the declared size of every item.
// Failing to resolve the collection is fatal. Failing to size an item is not:
// the item is counted as model.ZeroSize and aggregation continues.
func (uc *collectionUseCase) Aggregate(ctx context.Context, collection string) (*model.Summary, error) {
	logger := logging.From(ctx)

	collectionID, err := types.ParseCollectionID(collection)
	if err != nil {
		return nil, err
	}

	logger.Info("Resolving collection", "collection_id", collectionID)

	items, err := uc.steam.GetCollectionItems(ctx, collectionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve collection", goerr.V("collection_id", collectionID))
	}

	logger.Info("Collection resolved",
		"collection_id", collectionID,
		"item_count", len(items),
	)

	summary := &model.Summary{
		CollectionID:  collectionID,
		CollectionURL: strings.TrimSpace(collection),
		Items:         make([]model.Item, 0, len(items)),
	}

	for i, item := range items {
		item.Size = model.ZeroSize

		details, err := uc.steam.GetItemDetails(ctx, item)
		if err != nil {
			logger.Warn("Failed to get item size, counting as zero",
				"item_id", item.ID,
				"error", err,
			)
		} else {
			item.Size = details.Size
			if item.Title == "" {
				item.Title = details.Title
			}
			logger.Debug("Item sized",
				"item_id", item.ID,
				"title", item.Title,
				"size_bytes", item.Size,
			)
		}

		summary.Items = append(summary.Items, item)
		for _, hook := range uc.hooks {
			hook(ctx, i, len(items), item)
		}
	}

	if uc.sortBySize {
		summary.SortBySize()
	}

	logger.Info("Collection size aggregated",
		"collection_id", collectionID,
		"item_count", len(summary.Items),
		"total_bytes", summary.Total(),
		"total", units.FormatSize(summary.Total(), 2),
	)

	return summary, nil
}
