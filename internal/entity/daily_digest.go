package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DigestStatus is the fill state of a daily digest.
type DigestStatus string

const (
	DigestStatusDraft   DigestStatus = "draft"
	DigestStatusPartial DigestStatus = "partial"
	DigestStatusReady   DigestStatus = "ready"
	DigestStatusEmpty   DigestStatus = "empty"
)

// DailyDigest is the per-day digest record. The day key is unique.
type DailyDigest struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Day             string         `gorm:"column:day;type:varchar(10);not null;uniqueIndex" json:"day"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Params          datatypes.JSON `gorm:"column:params" json:"params"`
	Status          DigestStatus   `gorm:"column:status;type:varchar(20);not null;default:'draft'" json:"status"`
	Note            string         `gorm:"column:note;not null;default:''" json:"note"`
	Script          datatypes.JSON `gorm:"column:script" json:"script,omitempty"`
	ScriptModel     string         `gorm:"column:script_model" json:"script_model,omitempty"`
	ScriptCreatedAt *time.Time     `gorm:"column:script_created_at" json:"script_created_at,omitempty"`
	AudioRef        string         `gorm:"column:audio_ref" json:"audio_ref,omitempty"`
	VideoRef        string         `gorm:"column:video_ref" json:"video_ref,omitempty"`
}

// TableName specifies the table name for the DailyDigest model.
func (DailyDigest) TableName() string {
	return "daily_digests"
}

// DailyDigestItem places one item into one digest at a fixed rank.
// item_id is unique across all digests.
type DailyDigestItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	DigestID uint      `gorm:"column:digest_id;not null;uniqueIndex:idx_digest_rank,priority:1" json:"digest_id"`
	ItemID   uint      `gorm:"column:item_id;not null;uniqueIndex" json:"item_id"`
	Rank     int       `gorm:"column:rank;not null;uniqueIndex:idx_digest_rank,priority:2" json:"rank"`
	AddedAt  time.Time `gorm:"column:added_at;autoCreateTime" json:"added_at"`

	Digest *DailyDigest `gorm:"foreignKey:DigestID;constraint:OnDelete:CASCADE" json:"-"`
	Item   *Item        `gorm:"foreignKey:ItemID" json:"-"`
}

// TableName specifies the table name for the DailyDigestItem model.
func (DailyDigestItem) TableName() string {
	return "daily_digest_items"
}

// StatusForCount derives the digest status from its current membership size.
func StatusForCount(n, topN int) DigestStatus {
	switch {
	case n <= 0:
		return DigestStatusEmpty
	case n >= topN:
		return DigestStatusReady
	default:
		return DigestStatusPartial
	}
}

// Models lists every table managed by the digest service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&Item{},
		&ItemAnalysis{},
		&DailyDigest{},
		&DailyDigestItem{},
	}
}
