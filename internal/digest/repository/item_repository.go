package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/entity"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository defines the interface for interacting with ingested items and their analyses.
type ItemRepository interface {
	CreateIgnoreConflict(ctx context.Context, item *entity.Item) (bool, error)
	FindByID(ctx context.Context, id uint) (*entity.Item, error)
	FindByURLCanon(ctx context.Context, urlCanon string) (*entity.Item, error)
	FindByFingerprint(ctx context.Context, sourceName, fingerprint string) (*entity.Item, error)
	AddAnalysis(ctx context.Context, analysis *entity.ItemAnalysis) error
	PurgeUnused(ctx context.Context, before time.Time) (int64, error)
	ListRecent(ctx context.Context, q RecentItemsQuery) ([]entity.Item, error)
}

// RecentItemsQuery selects items whose effective time is at or after Since.
// A nil Exclude applies no content filter.
type RecentItemsQuery struct {
	Since          time.Time
	MinBusiness    int
	MinDFO         int
	RequireCompany bool
	Exclude        candidate.ContentFilter
	Limit          int
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{
		db: db,
	}
}

type itemRepository struct {
	db *gorm.DB
}

// CreateIgnoreConflict inserts the item unless its canonical URL or (source, fingerprint) already exists.
func (r *itemRepository) CreateIgnoreConflict(ctx context.Context, item *entity.Item) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByURLCanon(ctx context.Context, urlCanon string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Where("url_canon = ?", urlCanon).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByFingerprint(ctx context.Context, sourceName, fingerprint string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).
		Where("source_name = ? AND fingerprint = ?", sourceName, fingerprint).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddAnalysis appends a new analysis version. The highest id is the latest.
func (r *itemRepository) AddAnalysis(ctx context.Context, analysis *entity.ItemAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

// PurgeUnused deletes items older than before that were never placed in a digest, with their analyses.
func (r *itemRepository) PurgeUnused(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&entity.Item{}).
			Select("id").
			Where("COALESCE(published_at, fetched_at) < ?", before.UTC()).
			Where("id NOT IN (SELECT item_id FROM daily_digest_items)")

		if err := tx.Where("item_id IN (?)", stale).Delete(&entity.ItemAnalysis{}).Error; err != nil {
			return err
		}

		res := tx.Where("COALESCE(published_at, fetched_at) < ?", before.UTC()).
			Where("id NOT IN (SELECT item_id FROM daily_digest_items)").
			Delete(&entity.Item{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// ListRecent returns items newer than q.Since, newest first.
func (r *itemRepository) ListRecent(ctx context.Context, q RecentItemsQuery) ([]entity.Item, error) {
	sel := sq.Select("i.*").
		From("items i").
		Where(sq.GtOrEq{candidate.EffectiveAtExpr: q.Since.UTC()}).
		Where(sq.GtOrEq{"i.business_score": q.MinBusiness}).
		Where(sq.GtOrEq{"i.dfo_score": q.MinDFO})
	if q.RequireCompany {
		sel = sel.Where(sq.Eq{"i.has_company": true})
	}
	if q.Exclude != nil {
		sel = sel.Where(q.Exclude.Predicate())
	}

	query, args, err := sel.
		OrderBy(candidate.EffectiveAtExpr+" DESC", "i.id DESC").
		Limit(uint64(q.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent items query: %w", err)
	}

	var items []entity.Item
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
