package model

import (
	"sort"

	"github.com/m-mizutani/workshopsize/pkg/domain/types"
)

// Summary is the aggregated size of a collection
type Summary struct {
	CollectionID  types.CollectionID
	CollectionURL string
	Items         []Item
}

// Total returns the sum of all item sizes
func (x *Summary) Total() int64 {
	var total int64
	for _, item := range x.Items {
		total += item.Size
	}
	return total
}

// SortBySize orders items by size descending. Items of equal size keep their
// collection order.
func (x *Summary) SortBySize() {
	sort.SliceStable(x.Items, func(i, j int) bool {
		return x.Items[i].Size > x.Items[j].Size
	})
}
