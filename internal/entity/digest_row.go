package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Candidate is a selectable item together with its latest analysis score.
type Candidate struct {
	ItemID        uint `gorm:"column:item_id"`
	InterestScore int  `gorm:"column:interest_score"`
}

// DigestEntry is one ranked digest member joined with its item and latest analysis.
type DigestEntry struct {
	Rank          int            `gorm:"column:rank" json:"rank"`
	ItemID        uint           `gorm:"column:item_id" json:"item_id"`
	AddedAt       time.Time      `gorm:"column:added_at" json:"added_at"`
	SourceName    string         `gorm:"column:source_name" json:"source_name"`
	URL           string         `gorm:"column:url" json:"url"`
	Title         string         `gorm:"column:title" json:"title"`
	PublishedAt   *time.Time     `gorm:"column:published_at" json:"published_at,omitempty"`
	FetchedAt     time.Time      `gorm:"column:fetched_at" json:"fetched_at"`
	BusinessScore int            `gorm:"column:business_score" json:"business_score"`
	DFOScore      int            `gorm:"column:dfo_score" json:"dfo_score"`
	InterestScore *int           `gorm:"column:interest_score" json:"interest_score,omitempty"`
	TitleShort    *string        `gorm:"column:title_short" json:"title_short,omitempty"`
	Bulletin      *string        `gorm:"column:bulletin" json:"bulletin,omitempty"`
	Summary       *string        `gorm:"column:summary" json:"summary,omitempty"`
	Why           *string        `gorm:"column:why" json:"why,omitempty"`
	Tags          datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`
	IsDFOBusiness *bool          `gorm:"column:is_dfo_business" json:"is_dfo_business,omitempty"`
}

// DigestSummary is the list-view row of a digest.
type DigestSummary struct {
	ID         uint         `gorm:"column:id" json:"id"`
	Day        string       `gorm:"column:day" json:"day"`
	Status     DigestStatus `gorm:"column:status" json:"status"`
	CreatedAt  time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"column:updated_at" json:"updated_at"`
	ItemsCount int          `gorm:"column:items_count" json:"items_count"`
}
