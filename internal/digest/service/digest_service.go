package service

import (
	"context"
	"fmt"
	"time"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/utils"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

const maxListLimit = 200

// DigestService selects, stores and reads daily digests.
type DigestService interface {
	DefaultParams() entity.DigestParams
	Location() *time.Location
	Ensure(ctx context.Context, day string, params entity.DigestParams) (*entity.DailyDigest, error)
	CreateOrRefill(ctx context.Context, day string, params entity.DigestParams, refill, force bool) (*dto.BuildDigestResponse, error)
	GetByDay(ctx context.Context, day string) (*dto.DigestResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.ListDigestsResponse, error)
	ComputeDiagnostics(ctx context.Context, day string, params entity.DigestParams) (*dto.DiagnosticsResponse, error)
	AttachArtifacts(ctx context.Context, day string, req *dto.ArtifactsRequest) (*dto.DigestResponse, error)
	Invalidate(day string)
}

// NewDigestService creates a new DigestService.
func NewDigestService(
	digestRepo repository.DigestRepository,
	candidateRepo repository.CandidateRepository,
	log *logger.Logger,
	loc *time.Location,
	defaults entity.DigestParams,
	cacheTTL time.Duration,
) DigestService {
	if loc == nil {
		loc = time.UTC
	}
	if cacheTTL <= 0 {
		cacheTTL = config.DefaultCacheTTL
	}
	return &digestService{
		digestRepo:    digestRepo,
		candidateRepo: candidateRepo,
		logger:        log,
		loc:           loc,
		defaults:      defaults,
		cache:         cache.New(cacheTTL, 2*cacheTTL),
	}
}

type digestService struct {
	digestRepo    repository.DigestRepository
	candidateRepo repository.CandidateRepository
	logger        *logger.Logger
	loc           *time.Location
	defaults      entity.DigestParams
	cache         *cache.Cache
}

func (s *digestService) DefaultParams() entity.DigestParams {
	return s.defaults
}

func (s *digestService) Location() *time.Location {
	return s.loc
}

func (s *digestService) parseDay(day string) (time.Time, error) {
	t, err := utils.ParseDay(day, s.loc)
	if err != nil {
		return time.Time{}, newValidationError("day", "must be YYYY-MM-DD, got %q", day)
	}
	return t, nil
}

func validateParams(params entity.DigestParams) error {
	if err := params.Validate(); err != nil {
		return &ValidationError{Field: "params", Message: err.Error()}
	}
	return nil
}

// Ensure returns the day's digest, creating an empty draft on first access.
func (s *digestService) Ensure(ctx context.Context, day string, params entity.DigestParams) (*entity.DailyDigest, error) {
	if _, err := s.parseDay(day); err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	digest, err := s.digestRepo.Ensure(ctx, day, params)
	if err != nil {
		s.logger.Error("Failed to ensure digest", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("ensure digest %s: %w", day, err)
	}
	return digest, nil
}

// CreateOrRefill fills the day's digest up to top_n: preferred window first, then backfill on shortage.
func (s *digestService) CreateOrRefill(ctx context.Context, day string, params entity.DigestParams, refill, force bool) (*dto.BuildDigestResponse, error) {
	dayTime, err := s.parseDay(day)
	if err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	digest, err := s.digestRepo.Ensure(ctx, day, params)
	if err != nil {
		s.logger.Error("Failed to ensure digest", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("ensure digest %s: %w", day, err)
	}

	count, err := s.digestRepo.CountItems(ctx, digest.ID)
	if err != nil {
		return nil, fmt.Errorf("count digest items: %w", err)
	}

	if force {
		if err := s.digestRepo.Reset(ctx, digest.ID); err != nil {
			s.logger.Error("Failed to reset digest", logger.ErrorField(err), logger.StringField("day", day))
			return nil, fmt.Errorf("reset digest %s: %w", day, err)
		}
		s.cache.Delete(day)
		s.logger.Info("Digest reset", logger.StringField("day", day), logger.IntField("released", int(count)))
		count = 0
	}

	if int(count) >= params.TopN || (count > 0 && !refill && !force) {
		return s.buildResult(ctx, day, dayTime, params, false, 0)
	}

	need := params.TopN - int(count)
	windows := candidate.WindowsFor(dayTime, params)

	picked, err := s.candidateRepo.Find(ctx, params, windows.Preferred, need)
	if err != nil {
		s.logger.Error("Failed to select preferred candidates", logger.ErrorField(err), logger.StringField("day", day))
		return nil, err
	}
	preferred := len(picked)

	if len(picked) < need {
		backfill, err := s.candidateRepo.Find(ctx, params, windows.Backfill, need-len(picked))
		if err != nil {
			s.logger.Error("Failed to select backfill candidates", logger.ErrorField(err), logger.StringField("day", day))
			return nil, err
		}
		picked = append(picked, backfill...)
	}

	ids := lo.Map(picked, func(c entity.Candidate, _ int) uint { return c.ItemID })
	fill, err := s.digestRepo.Fill(ctx, digest.ID, ids, params.TopN)
	s.cache.Delete(day)
	if err != nil {
		s.logger.Error("Failed to fill digest", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("fill digest %s: %w", day, err)
	}

	for _, itemID := range fill.Skipped {
		s.logger.Warn("Item already claimed by another digest, skipping",
			logger.Field("digest_id", digest.ID),
			logger.Field("item_id", itemID),
			logger.StringField("day", day))
	}

	s.logger.Info("Digest filled",
		logger.StringField("day", day),
		logger.IntField("need", need),
		logger.IntField("preferred", preferred),
		logger.IntField("backfill", len(picked)-preferred),
		logger.IntField("inserted", fill.Inserted),
		logger.StringField("status", string(fill.Status)))

	changed := force || fill.Inserted > 0 || fill.Status != fill.PreviousStatus
	return s.buildResult(ctx, day, dayTime, params, changed, fill.Inserted)
}

func (s *digestService) buildResult(ctx context.Context, day string, dayTime time.Time, params entity.DigestParams, changed bool, inserted int) (*dto.BuildDigestResponse, error) {
	digest, err := s.GetByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	diagnostics, err := s.diagnostics(ctx, day, dayTime, params)
	if err != nil {
		return nil, err
	}
	return &dto.BuildDigestResponse{
		Digest:      digest,
		Diagnostics: diagnostics,
		Changed:     changed,
		Inserted:    inserted,
	}, nil
}

// GetByDay returns the digest with its ranked items, or ErrDigestNotFound.
func (s *digestService) GetByDay(ctx context.Context, day string) (*dto.DigestResponse, error) {
	if _, err := s.parseDay(day); err != nil {
		return nil, err
	}
	if cached, ok := s.cache.Get(day); ok {
		return cached.(*dto.DigestResponse), nil
	}

	digest, err := s.digestRepo.FindByDay(ctx, day)
	if err != nil {
		s.logger.Error("Failed to load digest", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("load digest %s: %w", day, err)
	}
	if digest == nil {
		return nil, ErrDigestNotFound
	}

	entries, err := s.digestRepo.ListEntries(ctx, digest.ID)
	if err != nil {
		s.logger.Error("Failed to load digest items", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("load digest items %s: %w", day, err)
	}

	resp := dto.NewDigestResponse(digest, entries)
	s.cache.SetDefault(day, resp)
	return resp, nil
}

// List returns a page of digest summaries ordered by day, newest first.
func (s *digestService) List(ctx context.Context, limit, offset int) (*dto.ListDigestsResponse, error) {
	if limit < 1 || limit > maxListLimit {
		return nil, newValidationError("limit", "must be between 1 and %d, got %d", maxListLimit, limit)
	}
	if offset < 0 {
		return nil, newValidationError("offset", "must not be negative, got %d", offset)
	}

	rows, err := s.digestRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list digests", logger.ErrorField(err))
		return nil, fmt.Errorf("list digests: %w", err)
	}
	if rows == nil {
		rows = []entity.DigestSummary{}
	}
	return &dto.ListDigestsResponse{Limit: limit, Offset: offset, Items: rows}, nil
}

// ComputeDiagnostics counts eligible candidates overall and per window. It never writes.
func (s *digestService) ComputeDiagnostics(ctx context.Context, day string, params entity.DigestParams) (*dto.DiagnosticsResponse, error) {
	dayTime, err := s.parseDay(day)
	if err != nil {
		return nil, err
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}
	return s.diagnostics(ctx, day, dayTime, params)
}

func (s *digestService) diagnostics(ctx context.Context, day string, dayTime time.Time, params entity.DigestParams) (*dto.DiagnosticsResponse, error) {
	windows := candidate.WindowsFor(dayTime, params)

	total, err := s.candidateRepo.Count(ctx, params, nil)
	if err != nil {
		return nil, err
	}
	prefer, err := s.candidateRepo.Count(ctx, params, &windows.Preferred)
	if err != nil {
		return nil, err
	}
	fallback, err := s.candidateRepo.Count(ctx, params, &windows.Backfill)
	if err != nil {
		return nil, err
	}

	return &dto.DiagnosticsResponse{
		Day:             day,
		PreferDays:      candidate.PreferredDays(dayTime, params),
		MaxLookbackDays: params.MaxLookbackDays,
		Counts: dto.DigestCounts{
			CandidatesTotal: total,
			PreferBucket:    prefer,
			FallbackBucket:  fallback,
		},
	}, nil
}

// AttachArtifacts records rendered media references. The fill status is left as is.
func (s *digestService) AttachArtifacts(ctx context.Context, day string, req *dto.ArtifactsRequest) (*dto.DigestResponse, error) {
	if _, err := s.parseDay(day); err != nil {
		return nil, err
	}
	if req.AudioRef == nil && req.VideoRef == nil {
		return nil, newValidationError("artifacts", "audio_ref or video_ref is required")
	}

	digest, err := s.digestRepo.FindByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load digest %s: %w", day, err)
	}
	if digest == nil {
		return nil, ErrDigestNotFound
	}

	if err := s.digestRepo.SaveArtifacts(ctx, digest.ID, req.AudioRef, req.VideoRef); err != nil {
		s.logger.Error("Failed to save digest artifacts", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("save artifacts %s: %w", day, err)
	}
	s.cache.Delete(day)
	return s.GetByDay(ctx, day)
}

// Invalidate drops the cached read of a day.
func (s *digestService) Invalidate(day string) {
	s.cache.Delete(day)
}
