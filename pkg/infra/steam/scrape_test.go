package steam_test

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/workshopsize/pkg/domain/interfaces"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
	"github.com/m-mizutani/workshopsize/pkg/infra/steam"
)

//go:embed testdata/collection.html
var collectionPage []byte

//go:embed testdata/item.html
var itemPage []byte

//go:embed testdata/error.html
var errorPage []byte

// newCommunityServer serves pages keyed by the id query parameter
func newCommunityServer(t *testing.T, pages map[string][]byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Path, "/sharedfiles/filedetails/")
		page, ok := pages[r.URL.Query().Get("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}))
	t.Cleanup(server.Close)
	return server
}

func newScrapeClient(t *testing.T, server *httptest.Server) interfaces.SteamClient {
	t.Helper()
	client, err := steam.New(steam.SourceHTML, steam.WithCommunityBaseURL(server.URL))
	gt.NoError(t, err)
	return client
}

func TestScrapeClient_GetCollectionItems(t *testing.T) {
	ctx := context.Background()

	t.Run("parses collection items", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{"300": collectionPage})

		items, err := newScrapeClient(t, server).GetCollectionItems(ctx, "300")
		gt.NoError(t, err)
		gt.Equal(t, len(items), 2)

		gt.Equal(t, items[0].ID, types.ItemID("301"))
		gt.Equal(t, items[0].Title, "Weapons Pack")
		gt.Equal(t, items[0].URL, "https://steamcommunity.com/sharedfiles/filedetails/?id=301")

		// ID taken from the link when the block has no sharedfile_ id
		gt.Equal(t, items[1].ID, types.ItemID("302"))
		gt.Equal(t, items[1].Title, "Map Textures")
	})

	t.Run("error page is not a collection", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{"300": errorPage})

		_, err := newScrapeClient(t, server).GetCollectionItems(ctx, "300")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, steam.ErrCollectionNotFound))
	})

	t.Run("single item page is not a collection", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{"300": itemPage})

		_, err := newScrapeClient(t, server).GetCollectionItems(ctx, "300")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, steam.ErrCollectionNotFound))
	})

	t.Run("empty collection", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{
			"300": []byte(`<html><body><div class="collectionChildren"></div></body></html>`),
		})

		items, err := newScrapeClient(t, server).GetCollectionItems(ctx, "300")
		gt.NoError(t, err)
		gt.Equal(t, len(items), 0)
	})

	t.Run("not found", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{})

		_, err := newScrapeClient(t, server).GetCollectionItems(ctx, "300")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, steam.ErrUnexpectedStatus))
	})

	t.Run("item without any ID", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{
			"300": []byte(`<html><body><div class="collectionItem"><a href="/somewhere">x</a></div></body></html>`),
		})

		_, err := newScrapeClient(t, server).GetCollectionItems(ctx, "300")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, steam.ErrUnexpectedResponse))
	})
}

func TestScrapeClient_GetItemDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("parses file size", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{"301": itemPage})

		details, err := newScrapeClient(t, server).GetItemDetails(ctx, model.Item{ID: "301"})
		gt.NoError(t, err)
		gt.Equal(t, details.Size, int64(1234.5*1024*1024))
		gt.Equal(t, details.Title, "Weapons Pack")
	})

	t.Run("missing size stat", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{"301": errorPage})

		_, err := newScrapeClient(t, server).GetItemDetails(ctx, model.Item{ID: "301"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, steam.ErrSizeNotFound))
	})

	t.Run("unparsable size", func(t *testing.T) {
		server := newCommunityServer(t, map[string][]byte{
			"301": []byte(`<div class="detailsStatRight">unknown</div>`),
		})

		_, err := newScrapeClient(t, server).GetItemDetails(ctx, model.Item{ID: "301"})
		gt.Error(t, err)
	})
}

func TestScrapeClient_BodyTooLarge(t *testing.T) {
	server := newCommunityServer(t, map[string][]byte{"300": collectionPage})

	client, err := steam.New(steam.SourceHTML,
		steam.WithCommunityBaseURL(server.URL),
		steam.WithMaxBodySize(int64(len(collectionPage)-1)),
	)
	gt.NoError(t, err)

	items, err := client.GetCollectionItems(context.Background(), "300")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, steam.ErrUnexpectedResponse))
	gt.Equal(t, len(items), 0)

	client, err = steam.New(steam.SourceHTML,
		steam.WithCommunityBaseURL(server.URL),
		steam.WithMaxBodySize(int64(len(collectionPage))),
	)
	gt.NoError(t, err)

	items, err = client.GetCollectionItems(context.Background(), "300")
	gt.NoError(t, err)
	gt.Equal(t, len(items), 2)
}
