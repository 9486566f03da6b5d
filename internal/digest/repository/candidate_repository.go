package repository

import (
	"context"
	"fmt"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/entity"

	"gorm.io/gorm"
)

// CandidateRepository runs candidate queries. Reads happen outside any transaction.
type CandidateRepository interface {
	Find(ctx context.Context, params entity.DigestParams, window candidate.Window, need int) ([]entity.Candidate, error)
	Count(ctx context.Context, params entity.DigestParams, window *candidate.Window) (int64, error)
}

// NewCandidateRepository creates a new instance of CandidateRepository.
func NewCandidateRepository(db *gorm.DB, builder *candidate.Builder) CandidateRepository {
	return &candidateRepository{
		db:      db,
		builder: builder,
	}
}

type candidateRepository struct {
	db      *gorm.DB
	builder *candidate.Builder
}

func (r *candidateRepository) Find(ctx context.Context, params entity.DigestParams, window candidate.Window, need int) ([]entity.Candidate, error) {
	if need <= 0 {
		return nil, nil
	}

	query, args, err := r.builder.Select(params, window, need)
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}

	var rows []entity.Candidate
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	return rows, nil
}

func (r *candidateRepository) Count(ctx context.Context, params entity.DigestParams, window *candidate.Window) (int64, error) {
	query, args, err := r.builder.Count(params, window)
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}
