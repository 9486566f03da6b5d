package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dfo-news-digest/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FillResult reports what a fill transaction did.
type FillResult struct {
	Inserted       int
	Skipped        []uint
	Count          int64
	Status         entity.DigestStatus
	PreviousStatus entity.DigestStatus
}

// DigestRepository defines the interface for digest rows and their ranked membership.
type DigestRepository interface {
	FindByDay(ctx context.Context, day string) (*entity.DailyDigest, error)
	Ensure(ctx context.Context, day string, params entity.DigestParams) (*entity.DailyDigest, error)
	CountItems(ctx context.Context, digestID uint) (int64, error)
	Reset(ctx context.Context, digestID uint) error
	Fill(ctx context.Context, digestID uint, itemIDs []uint, topN int) (*FillResult, error)
	ListEntries(ctx context.Context, digestID uint) ([]entity.DigestEntry, error)
	List(ctx context.Context, limit, offset int) ([]entity.DigestSummary, error)
	SaveScript(ctx context.Context, digestID uint, script datatypes.JSON, model string) error
	SaveArtifacts(ctx context.Context, digestID uint, audioRef, videoRef *string) error
}

// NewDigestRepository creates a new instance of DigestRepository.
func NewDigestRepository(db *gorm.DB) DigestRepository {
	return &digestRepository{db: db}
}

type digestRepository struct {
	db *gorm.DB
}

// FindByDay returns nil when no digest exists for the day.
func (r *digestRepository) FindByDay(ctx context.Context, day string) (*entity.DailyDigest, error) {
	var digest entity.DailyDigest
	err := r.db.WithContext(ctx).Where("day = ?", day).First(&digest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &digest, nil
}

// Ensure creates the day's digest as a draft unless it exists. Concurrent callers converge on one row.
func (r *digestRepository) Ensure(ctx context.Context, day string, params entity.DigestParams) (*entity.DailyDigest, error) {
	digest := &entity.DailyDigest{
		Day:    day,
		Params: datatypes.JSON(params.JSON()),
		Status: entity.DigestStatusDraft,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoNothing: true,
	}).Create(digest).Error
	if err != nil {
		return nil, fmt.Errorf("insert digest %s: %w", day, err)
	}

	existing, err := r.FindByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("digest %s missing after insert", day)
	}
	return existing, nil
}

func (r *digestRepository) CountItems(ctx context.Context, digestID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.DailyDigestItem{}).Where("digest_id = ?", digestID).Count(&n).Error
	return n, err
}

// Reset drops every membership row of the digest and returns it to draft. Released items become candidates again.
func (r *digestRepository) Reset(ctx context.Context, digestID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("digest_id = ?", digestID).Delete(&entity.DailyDigestItem{}).Error; err != nil {
			return fmt.Errorf("delete digest items: %w", err)
		}
		return tx.Model(&entity.DailyDigest{}).Where("id = ?", digestID).Updates(map[string]interface{}{
			"status":     entity.DigestStatusDraft,
			"note":       "",
			"updated_at": time.Now().UTC(),
		}).Error
	})
}

// Fill appends itemIDs in order at the next free ranks, never past topN.
// The digest row is written first so concurrent fillers of the same digest serialize on it.
// An item already claimed by any digest is skipped and reported in Skipped.
func (r *digestRepository) Fill(ctx context.Context, digestID uint, itemIDs []uint, topN int) (*FillResult, error) {
	result := &FillResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		touch := tx.Model(&entity.DailyDigest{}).Where("id = ?", digestID).Update("updated_at", time.Now().UTC())
		if touch.Error != nil {
			return fmt.Errorf("lock digest: %w", touch.Error)
		}
		if touch.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var digest entity.DailyDigest
		if err := tx.Select("id", "status").First(&digest, digestID).Error; err != nil {
			return err
		}
		result.PreviousStatus = digest.Status

		var base int64
		if err := tx.Model(&entity.DailyDigestItem{}).Where("digest_id = ?", digestID).Count(&base).Error; err != nil {
			return fmt.Errorf("count digest items: %w", err)
		}

		for _, itemID := range itemIDs {
			rank := int(base) + result.Inserted + 1
			if rank > topN {
				break
			}

			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entity.DailyDigestItem{
				DigestID: digestID,
				ItemID:   itemID,
				Rank:     rank,
			})
			if res.Error != nil {
				return fmt.Errorf("insert digest item %d: %w", itemID, res.Error)
			}
			if res.RowsAffected == 0 {
				result.Skipped = append(result.Skipped, itemID)
				continue
			}
			result.Inserted++
		}

		result.Count = base + int64(result.Inserted)
		result.Status = entity.StatusForCount(int(result.Count), topN)

		return tx.Model(&entity.DailyDigest{}).Where("id = ?", digestID).Updates(map[string]interface{}{
			"status":     result.Status,
			"updated_at": time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListEntries returns the digest members by rank with item fields and the latest analysis, if any.
func (r *digestRepository) ListEntries(ctx context.Context, digestID uint) ([]entity.DigestEntry, error) {
	var entries []entity.DigestEntry
	err := r.db.WithContext(ctx).
		Table("daily_digest_items di").
		Select(`di.rank, di.item_id, di.added_at,
			i.source_name, i.url, i.title, i.published_at, i.fetched_at, i.business_score, i.dfo_score,
			a.interest_score, a.title_short, a.bulletin, a.summary, a.why, a.tags, a.is_dfo_business`).
		Joins("JOIN items i ON i.id = di.item_id").
		Joins("LEFT JOIN (SELECT item_id, MAX(id) AS max_id FROM item_analyses GROUP BY item_id) l ON l.item_id = i.id").
		Joins("LEFT JOIN item_analyses a ON a.id = l.max_id").
		Where("di.digest_id = ?", digestID).
		Order("di.rank ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// List returns digest summaries, newest day first.
func (r *digestRepository) List(ctx context.Context, limit, offset int) ([]entity.DigestSummary, error) {
	var rows []entity.DigestSummary
	err := r.db.WithContext(ctx).
		Table("daily_digests d").
		Select("d.id, d.day, d.status, d.created_at, d.updated_at, COUNT(di.id) AS items_count").
		Joins("LEFT JOIN daily_digest_items di ON di.digest_id = d.id").
		Group("d.id, d.day, d.status, d.created_at, d.updated_at").
		Order("d.day DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *digestRepository) SaveScript(ctx context.Context, digestID uint, script datatypes.JSON, model string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&entity.DailyDigest{}).Where("id = ?", digestID).Updates(map[string]interface{}{
		"script":            script,
		"script_model":      model,
		"script_created_at": now,
		"updated_at":        now,
	}).Error
}

// SaveArtifacts sets the non-nil media references. Item membership and status are untouched.
func (r *digestRepository) SaveArtifacts(ctx context.Context, digestID uint, audioRef, videoRef *string) error {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if audioRef != nil {
		updates["audio_ref"] = *audioRef
	}
	if videoRef != nil {
		updates["video_ref"] = *videoRef
	}
	return r.db.WithContext(ctx).Model(&entity.DailyDigest{}).Where("id = ?", digestID).Updates(updates).Error
}
