package entity

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item is one ingested article. Rows are immutable after insert.
// SearchText is lower(title + " " + body) folded in Go, since sqlite's LOWER only folds ASCII.
type Item struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SourceName    string         `gorm:"column:source_name;not null;uniqueIndex:idx_items_source_fingerprint" json:"source_name"`
	URL           string         `gorm:"column:url;not null" json:"url"`
	URLCanon      string         `gorm:"column:url_canon;not null;uniqueIndex" json:"url_canon"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Body          string         `gorm:"column:body;not null" json:"body"`
	PublishedAt   *time.Time     `gorm:"column:published_at;index" json:"published_at,omitempty"`
	FetchedAt     time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
	Fingerprint   string         `gorm:"column:fingerprint;not null;uniqueIndex:idx_items_source_fingerprint" json:"fingerprint"`
	BusinessScore int            `gorm:"column:business_score;not null;default:0" json:"business_score"`
	DFOScore      int            `gorm:"column:dfo_score;not null;default:0" json:"dfo_score"`
	HasCompany    bool           `gorm:"column:has_company;not null;default:false" json:"has_company"`
	Reasons       datatypes.JSON `gorm:"column:reasons" json:"reasons"`
	SearchText    string         `gorm:"column:search_text;not null;default:''" json:"-"`
}

// TableName specifies the table name for the Item model.
func (Item) TableName() string {
	return "items"
}

// BeforeCreate stores timestamps in UTC so calendar-day bounds compare consistently on every engine.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.FetchedAt.IsZero() {
		i.FetchedAt = time.Now()
	}
	i.FetchedAt = i.FetchedAt.UTC()
	if i.PublishedAt != nil {
		p := i.PublishedAt.UTC()
		i.PublishedAt = &p
	}
	i.SearchText = SearchText(i.Title, i.Body)
	if len(i.Reasons) == 0 {
		i.Reasons = datatypes.JSON("{}")
	}
	return nil
}

// EffectiveAt is the timestamp used for day bucketing: published time, or fetch time when unknown.
func (i *Item) EffectiveAt() time.Time {
	if i.PublishedAt != nil {
		return *i.PublishedAt
	}
	return i.FetchedAt
}

// SearchText builds the lowercased text keyword filters match against.
func SearchText(title, body string) string {
	return strings.ToLower(title + " " + body)
}
