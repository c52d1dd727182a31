package types

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CollectionID identifies a Steam Workshop collection
type CollectionID string

// ItemID identifies a single Steam Workshop item
type ItemID string

func (x CollectionID) String() string { return string(x) }
func (x ItemID) String() string       { return string(x) }

var (
	ErrInvalidCollection = goerr.New("invalid collection identifier")

	numericID = regexp.MustCompile(`^[0-9]+$`)

	communityHosts = map[string]bool{
		"steamcommunity.com":     true,
		"www.steamcommunity.com": true,
	}
)

// ParseCollectionID accepts either a bare numeric ID or a community URL such as
// https://steamcommunity.com/sharedfiles/filedetails/?id=123456
func ParseCollectionID(s string) (CollectionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", goerr.Wrap(ErrInvalidCollection, "empty collection identifier")
	}

	if numericID.MatchString(s) {
		return CollectionID(s), nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidCollection, "failed to parse collection URL",
			goerr.V("input", s), goerr.V("cause", err.Error()))
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", goerr.Wrap(ErrInvalidCollection, "collection URL must be http(s)", goerr.V("input", s))
	}
	if !communityHosts[strings.ToLower(u.Hostname())] {
		return "", goerr.Wrap(ErrInvalidCollection, "collection URL must be on steamcommunity.com",
			goerr.V("input", s), goerr.V("host", u.Host))
	}
	if !strings.HasSuffix(u.Path, "/filedetails/") && !strings.HasSuffix(u.Path, "/filedetails") {
		return "", goerr.Wrap(ErrInvalidCollection, "collection URL must point to a filedetails page", goerr.V("input", s))
	}

	id := u.Query().Get("id")
	if !numericID.MatchString(id) {
		return "", goerr.Wrap(ErrInvalidCollection, "collection URL has no numeric id parameter", goerr.V("input", s))
	}

	return CollectionID(id), nil
}

// ParseItemID validates a numeric workshop item ID
func ParseItemID(s string) (ItemID, bool) {
	s = strings.TrimSpace(s)
	if !numericID.MatchString(s) {
		return "", false
	}
	return ItemID(s), true
}
