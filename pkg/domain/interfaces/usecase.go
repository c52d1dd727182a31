package interfaces

import (
	"context"

	"github.com/m-mizutani/workshopsize/pkg/domain/model"
)

// CollectionUseCase defines the collection size aggregation
type CollectionUseCase interface {
	// Aggregate resolves the collection and sums the size of every member item
	Aggregate(ctx context.Context, collection string) (*model.Summary, error)
}
