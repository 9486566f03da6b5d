package candidate

import (
	"dfo-news-digest/internal/entity"

	sq "github.com/Masterminds/squirrel"
)

// EffectiveAtExpr is the item time used for day bucketing, over the items alias i.
const EffectiveAtExpr = "COALESCE(i.published_at, i.fetched_at)"

const (
	latestJoin = "(SELECT item_id, MAX(id) AS max_id FROM item_analyses GROUP BY item_id) l ON l.item_id = i.id"
	unusedExpr = "i.id NOT IN (SELECT item_id FROM daily_digest_items)"
)

// Builder composes candidate queries from digest params.
type Builder struct {
	filter ContentFilter
}

// NewBuilder creates a Builder. A nil filter falls back to the default war filter.
func NewBuilder(filter ContentFilter) *Builder {
	if filter == nil {
		filter = DefaultContentFilter()
	}
	return &Builder{filter: filter}
}

// Base returns the unordered eligible-item query: score thresholds, content filter and global exclusivity.
func (b *Builder) Base(p entity.DigestParams) sq.SelectBuilder {
	q := sq.Select("i.id AS item_id", "a.interest_score").
		From("items i").
		Join(latestJoin).
		Join("item_analyses a ON a.id = l.max_id").
		Where(sq.GtOrEq{"i.business_score": p.MinBusiness}).
		Where(sq.GtOrEq{"i.dfo_score": p.MinDFO}).
		Where(sq.GtOrEq{"a.interest_score": p.MinInterest})

	if p.OnlyDFOBusiness {
		q = q.Where(sq.Eq{"a.is_dfo_business": true})
	}
	if p.ExcludeWar {
		q = q.Where(b.filter.Predicate())
	}

	return q.Where(sq.Expr(unusedExpr))
}

// InWindow restricts a query to items whose effective time falls in w.
func InWindow(q sq.SelectBuilder, w Window) sq.SelectBuilder {
	return q.
		Where(sq.GtOrEq{EffectiveAtExpr: w.From}).
		Where(sq.Lt{EffectiveAtExpr: w.To})
}

// Ordered applies the ranking order and a row limit.
func Ordered(q sq.SelectBuilder, limit int) sq.SelectBuilder {
	return q.
		OrderBy("a.interest_score DESC", EffectiveAtExpr+" DESC", "i.id DESC").
		Limit(uint64(limit))
}

// Select returns the ordered top-need candidates of a window.
func (b *Builder) Select(p entity.DigestParams, w Window, need int) (string, []interface{}, error) {
	return Ordered(InWindow(b.Base(p), w), need).ToSql()
}

// Count returns the eligible count of a window. A nil window counts every eligible item.
func (b *Builder) Count(p entity.DigestParams, w *Window) (string, []interface{}, error) {
	q := b.Base(p)
	if w != nil {
		q = InWindow(q, *w)
	}
	return sq.Select("COUNT(*)").FromSelect(q, "c").ToSql()
}
