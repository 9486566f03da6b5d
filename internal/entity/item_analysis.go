package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ItemAnalysis is an LLM classification of an item. Several versions may exist per item;
// the one with the highest ID is the latest.
type ItemAnalysis struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ItemID        uint           `gorm:"column:item_id;not null;index" json:"item_id"`
	Model         string         `gorm:"column:model" json:"model"`
	PromptVersion string         `gorm:"column:prompt_version" json:"prompt_version"`
	IsDFO         bool           `gorm:"column:is_dfo;not null;default:false" json:"is_dfo"`
	IsBusiness    bool           `gorm:"column:is_business;not null;default:false" json:"is_business"`
	IsDFOBusiness bool           `gorm:"column:is_dfo_business;not null;default:false" json:"is_dfo_business"`
	InterestScore int            `gorm:"column:interest_score;not null;default:0" json:"interest_score"`
	TitleShort    string         `gorm:"column:title_short" json:"title_short"`
	Bulletin      string         `gorm:"column:bulletin" json:"bulletin"`
	Summary       string         `gorm:"column:summary" json:"summary"`
	Why           string         `gorm:"column:why" json:"why"`
	Tags          datatypes.JSON `gorm:"column:tags" json:"tags"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the ItemAnalysis model.
func (ItemAnalysis) TableName() string {
	return "item_analyses"
}
