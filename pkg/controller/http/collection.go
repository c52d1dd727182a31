package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/workshopsize/pkg/controller/report"
	"github.com/m-mizutani/workshopsize/pkg/domain/interfaces"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
	"github.com/m-mizutani/workshopsize/pkg/utils/logging"
)

// CollectionHandler serves collection size lookups
type CollectionHandler struct {
	collectionUC interfaces.CollectionUseCase
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionUC interfaces.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{
		collectionUC: collectionUC,
	}
}

// HandleSize aggregates the collection named in the path and responds with the
// JSON report
func (h *CollectionHandler) HandleSize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.From(ctx)

	collectionID := chi.URLParam(r, "collectionID")

	summary, err := h.collectionUC.Aggregate(ctx, collectionID)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCollection) {
			writeError(ctx, w, err, http.StatusBadRequest)
			return
		}

		logger.Error("Failed to aggregate collection", "error", err, "collection_id", collectionID)
		writeError(ctx, w, err, http.StatusBadGateway)
		return
	}

	writeJSON(ctx, w, report.NewDocument(summary), http.StatusOK)
}
