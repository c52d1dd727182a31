package steam

import (
	"context"
	"net/url"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
	"github.com/tidwall/gjson"
)

const (
	collectionDetailsPath = "/ISteamRemoteStorage/GetCollectionDetails/v1/"
	fileDetailsPath       = "/ISteamRemoteStorage/GetPublishedFileDetails/v1/"

	// resultOK is the EResult value Steam uses for success
	resultOK = 1
)

type apiClient struct {
	*transport
}

// GetCollectionItems resolves collection membership via GetCollectionDetails
func (c *apiClient) GetCollectionItems(ctx context.Context, id types.CollectionID) ([]model.Item, error) {
	form := url.Values{}
	form.Set("collectioncount", "1")
	form.Set("publishedfileids[0]", id.String())

	body, err := c.postForm(ctx, c.cfg.apiBaseURL+collectionDetailsPath, form)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch collection details", goerr.V("collection_id", id))
	}

	if !gjson.ValidBytes(body) {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "collection details is not JSON", goerr.V("collection_id", id))
	}

	details := gjson.GetBytes(body, "response.collectiondetails.0")
	if !details.Exists() {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "no collection details in response", goerr.V("collection_id", id))
	}
	if result := details.Get("result").Int(); result != resultOK {
		return nil, goerr.Wrap(ErrCollectionNotFound, "steam rejected collection",
			goerr.V("collection_id", id),
			goerr.V("result", result),
		)
	}

	// children is omitted for an empty collection
	var items []model.Item
	for _, child := range details.Get("children").Array() {
		childID, ok := types.ParseItemID(child.Get("publishedfileid").String())
		if !ok {
			return nil, goerr.Wrap(ErrUnexpectedResponse, "invalid child item ID",
				goerr.V("collection_id", id),
				goerr.V("child", child.Raw),
			)
		}
		items = append(items, model.Item{
			ID:  childID,
			URL: c.itemURL(childID.String()),
		})
	}

	return items, nil
}

// GetItemDetails reads file_size and title via GetPublishedFileDetails
func (c *apiClient) GetItemDetails(ctx context.Context, item model.Item) (*model.ItemDetails, error) {
	form := url.Values{}
	form.Set("itemcount", "1")
	form.Set("publishedfileids[0]", item.ID.String())

	body, err := c.postForm(ctx, c.cfg.apiBaseURL+fileDetailsPath, form)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch file details", goerr.V("item_id", item.ID))
	}

	if !gjson.ValidBytes(body) {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "file details is not JSON", goerr.V("item_id", item.ID))
	}

	details := gjson.GetBytes(body, "response.publishedfiledetails.0")
	if !details.Exists() {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "no file details in response", goerr.V("item_id", item.ID))
	}
	if result := details.Get("result").Int(); result != resultOK {
		return nil, goerr.Wrap(ErrItemUnavailable, "steam rejected item",
			goerr.V("item_id", item.ID),
			goerr.V("result", result),
		)
	}

	size, err := parseFileSize(details.Get("file_size"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file_size", goerr.V("item_id", item.ID))
	}

	return &model.ItemDetails{
		ID:    item.ID,
		Title: details.Get("title").String(),
		Size:  size,
	}, nil
}

// parseFileSize accepts file_size as either a JSON string or number
func parseFileSize(v gjson.Result) (int64, error) {
	var (
		size int64
		err  error
	)

	switch v.Type {
	case gjson.String:
		size, err = strconv.ParseInt(v.Str, 10, 64)
		if err != nil {
			return 0, goerr.Wrap(ErrUnexpectedResponse, "file_size is not an integer", goerr.V("file_size", v.Str))
		}
	case gjson.Number:
		size = v.Int()
	default:
		return 0, goerr.Wrap(ErrSizeNotFound, "file_size missing", goerr.V("raw", v.Raw))
	}

	if size < 0 {
		return 0, goerr.Wrap(ErrUnexpectedResponse, "negative file_size", goerr.V("file_size", size))
	}
	return size, nil
}
