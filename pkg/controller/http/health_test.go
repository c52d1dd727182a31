package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/workshopsize/pkg/controller/http"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()

	server, err := controller.NewServer(
		ctx,
		&mockCollectionUseCase{},
		controller.WithAddr("localhost:0"),
	)
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "workshopsize")
	gt.Value(t, status.Version).NotEqual("")
}
