package steam

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/domain/model"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
	"github.com/m-mizutani/workshopsize/pkg/utils/units"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	classCollectionItem     = "collectionItem"
	classCollectionChildren = "collectionChildren"
	classItemTitle          = "workshopItemTitle"
	classStatRight          = "detailsStatRight"

	sharedFilePrefix = "sharedfile_"
)

type scrapeClient struct {
	*transport
}

// GetCollectionItems scrapes the collection page for its collectionItem blocks
func (c *scrapeClient) GetCollectionItems(ctx context.Context, id types.CollectionID) ([]model.Item, error) {
	doc, err := c.fetchPage(ctx, id.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch collection page", goerr.V("collection_id", id))
	}

	blocks := findAll(doc, divWithClass(classCollectionItem))
	if len(blocks) == 0 && findFirst(doc, divWithClass(classCollectionChildren)) == nil {
		return nil, goerr.Wrap(ErrCollectionNotFound, "page is not a workshop collection", goerr.V("collection_id", id))
	}

	items := make([]model.Item, 0, len(blocks))
	for _, block := range blocks {
		item, err := c.parseCollectionItem(block)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse collection item", goerr.V("collection_id", id))
		}
		items = append(items, *item)
	}

	return items, nil
}

func (c *scrapeClient) parseCollectionItem(block *html.Node) (*model.Item, error) {
	var item model.Item

	if link := findFirst(block, isElement(atom.A)); link != nil {
		item.URL = attr(link, "href")
	}

	if raw, ok := strings.CutPrefix(attr(block, "id"), sharedFilePrefix); ok {
		if id, ok := types.ParseItemID(raw); ok {
			item.ID = id
		}
	}
	if item.ID == "" && item.URL != "" {
		if u, err := url.Parse(item.URL); err == nil {
			if id, ok := types.ParseItemID(u.Query().Get("id")); ok {
				item.ID = id
			}
		}
	}
	if item.ID == "" {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "collection item has no ID", goerr.V("href", item.URL))
	}

	if item.URL == "" {
		item.URL = c.itemURL(item.ID.String())
	}
	if title := findFirst(block, divWithClass(classItemTitle)); title != nil {
		item.Title = textContent(title)
	}

	return &item, nil
}

// GetItemDetails scrapes the first detailsStatRight value (File Size) of an item page
func (c *scrapeClient) GetItemDetails(ctx context.Context, item model.Item) (*model.ItemDetails, error) {
	doc, err := c.fetchPage(ctx, item.ID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch item page", goerr.V("item_id", item.ID))
	}

	stat := findFirst(doc, divWithClass(classStatRight))
	if stat == nil {
		return nil, goerr.Wrap(ErrSizeNotFound, "item page has no size stat", goerr.V("item_id", item.ID))
	}

	size, err := units.ParseSize(textContent(stat))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse item size", goerr.V("item_id", item.ID))
	}

	details := &model.ItemDetails{
		ID:   item.ID,
		Size: size,
	}
	if title := findFirst(doc, divWithClass(classItemTitle)); title != nil {
		details.Title = textContent(title)
	}

	return details, nil
}

func (c *scrapeClient) fetchPage(ctx context.Context, id string) (*html.Node, error) {
	body, err := c.get(ctx, c.itemURL(id))
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "failed to parse HTML", goerr.V("cause", err.Error()))
	}
	return doc, nil
}

type matcher func(n *html.Node) bool

func isElement(a atom.Atom) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func divWithClass(class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Div {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func findFirst(root *html.Node, match matcher) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll does not descend into matched nodes
func findAll(root *html.Node, match matcher) []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			nodes = append(nodes, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
