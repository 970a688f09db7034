// pkg/api/types.go
package api

import (
	"github.com/moreffnest/weblist-parsers/internal/config"
	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/internal/scraper"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// Re-export types from internal packages for public API
type (
	Entry         = types.Entry
	WatchEvent    = types.WatchEvent
	EntrySet      = types.EntrySet
	WatchEventSet = types.WatchEventSet
	ListType      = types.ListType
	Config        = config.Config
	Result        = scraper.Result
)

// Error kinds, for use with errors.Is
var (
	ErrInvalidListType      = weberrors.ErrInvalidListType
	ErrInvalidListPage      = weberrors.ErrInvalidListPage
	ErrInvalidFileExtension = weberrors.ErrInvalidFileExtension
)

// ListResponse is the JSON shape of a parsed list
type ListResponse struct {
	Type    ListType `json:"type"`
	Count   int      `json:"count"`
	Pages   int      `json:"pages,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Entries []Entry  `json:"entries"`
}

// NewListResponse builds the response for a pagination result
func NewListResponse(r *Result) ListResponse {
	entries := r.Entries.Slice()
	if entries == nil {
		entries = []Entry{}
	}
	return ListResponse{
		Type:    r.Type,
		Count:   len(entries),
		Pages:   r.Pages,
		Reason:  string(r.Reason),
		Entries: entries,
	}
}
