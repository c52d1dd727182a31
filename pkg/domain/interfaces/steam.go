package interfaces

import (
	"context"

	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
)

// SteamClient defines the lookups needed against Steam Workshop
type SteamClient interface {
	// GetCollectionItems returns the member items of a collection. Any failure is
	// fatal for the run and no partial result is returned.
	GetCollectionItems(ctx context.Context, id types.CollectionID) ([]model.Item, error)

	// GetItemDetails returns the declared file size and title of one item
	GetItemDetails(ctx context.Context, item model.Item) (*model.ItemDetails, error)
}
