package model

import "github.com/m-mizutani/workshopsize/pkg/domain/types"

// ZeroSize is the size recorded for an item whose details could not be fetched.
// A failed lookup and a genuinely empty item are indistinguishable in totals.
const ZeroSize int64 = 0

// Item represents a single workshop item in a collection
type Item struct {
	ID    types.ItemID `json:"id" toml:"id"`
	Title string       `json:"title" toml:"title"`
	URL   string       `json:"url" toml:"url"`
	Size  int64        `json:"size_bytes" toml:"size_bytes"` // Declared file size in bytes
}

// ItemDetails is what a size lookup returns for one item
type ItemDetails struct {
	ID    types.ItemID
	Title string
	Size  int64
}
