package dto

import (
	"time"

	"dfo-news-digest/internal/entity"
)

// CreateItemRequest is an article pushed by the collector.
type CreateItemRequest struct {
	SourceName    string            `json:"source_name"`
	URL           string            `json:"url"`
	Title         string            `json:"title"`
	Body          string            `json:"body"`
	PublishedAt   *time.Time        `json:"published_at"`
	FetchedAt     *time.Time        `json:"fetched_at"`
	BusinessScore int               `json:"business_score"`
	DFOScore      int               `json:"dfo_score"`
	HasCompany    bool              `json:"has_company"`
	Reasons       map[string]string `json:"reasons"`
}

// CreateItemResponse reports whether the article was new.
type CreateItemResponse struct {
	ID       uint   `json:"id,omitempty"`
	Created  bool   `json:"created"`
	URLCanon string `json:"url_canon"`
}

// CreateAnalysisRequest is a classification pushed by the LLM worker.
type CreateAnalysisRequest struct {
	Model         string   `json:"model"`
	PromptVersion string   `json:"prompt_version"`
	IsDFO         bool     `json:"is_dfo"`
	IsBusiness    bool     `json:"is_business"`
	IsDFOBusiness bool     `json:"is_dfo_business"`
	InterestScore int      `json:"interest_score"`
	TitleShort    string   `json:"title_short"`
	Bulletin      string   `json:"bulletin"`
	Summary       string   `json:"summary"`
	Why           string   `json:"why"`
	Tags          []string `json:"tags"`
}

// CreateAnalysisResponse identifies the stored analysis.
type CreateAnalysisResponse struct {
	ID     uint `json:"id"`
	ItemID uint `json:"item_id"`
}

// PurgeResponse reports how many unused items were removed.
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// ListItemsRequest filters the recent-items listing.
type ListItemsRequest struct {
	WindowHours    int
	MinBusiness    int
	MinDFO         int
	RequireCompany bool
	ExcludeWar     bool
	Limit          int
}

// DefaultListItemsRequest returns the listing defaults: last 24 hours, business and DFO score 2+, 50 rows.
func DefaultListItemsRequest() ListItemsRequest {
	return ListItemsRequest{
		WindowHours: 24,
		MinBusiness: 2,
		MinDFO:      2,
		Limit:       50,
	}
}

// ListItemsResponse is a page of recent items, newest first.
type ListItemsResponse struct {
	Count int           `json:"n"`
	Items []entity.Item `json:"items"`
}
