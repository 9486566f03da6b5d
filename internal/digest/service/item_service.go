package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/utils"

	"gorm.io/datatypes"
)

// ItemService accepts items from the collector and analyses from the LLM worker.
type ItemService interface {
	CreateItem(ctx context.Context, req *dto.CreateItemRequest) (*dto.CreateItemResponse, error)
	AddAnalysis(ctx context.Context, itemID uint, req *dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error)
	PurgeUnused(ctx context.Context, olderThanDays int) (*dto.PurgeResponse, error)
	ListRecent(ctx context.Context, req dto.ListItemsRequest) (*dto.ListItemsResponse, error)
}

// NewItemService creates a new ItemService. filter backs exclude_war in listings; nil means the default war filter.
func NewItemService(itemRepo repository.ItemRepository, filter candidate.ContentFilter, log *logger.Logger, loc *time.Location) ItemService {
	if loc == nil {
		loc = time.UTC
	}
	if filter == nil {
		filter = candidate.DefaultContentFilter()
	}
	return &itemService{itemRepo: itemRepo, filter: filter, logger: log, loc: loc}
}

type itemService struct {
	itemRepo repository.ItemRepository
	filter   candidate.ContentFilter
	logger   *logger.Logger
	loc      *time.Location
}

func (s *itemService) CreateItem(ctx context.Context, req *dto.CreateItemRequest) (*dto.CreateItemResponse, error) {
	switch {
	case strings.TrimSpace(req.SourceName) == "":
		return nil, newValidationError("source_name", "is required")
	case strings.TrimSpace(req.URL) == "":
		return nil, newValidationError("url", "is required")
	case strings.TrimSpace(req.Title) == "":
		return nil, newValidationError("title", "is required")
	case req.BusinessScore < 0 || req.BusinessScore > 4:
		return nil, newValidationError("business_score", "must be between 0 and 4, got %d", req.BusinessScore)
	case req.DFOScore < 0 || req.DFOScore > 4:
		return nil, newValidationError("dfo_score", "must be between 0 and 4, got %d", req.DFOScore)
	}

	canon := utils.CanonicalizeURL(req.URL)
	title := utils.NormalizeWhitespace(req.Title)

	reasons := datatypes.JSON("{}")
	if len(req.Reasons) > 0 {
		b, err := json.Marshal(req.Reasons)
		if err != nil {
			return nil, newValidationError("reasons", "invalid: %v", err)
		}
		reasons = b
	}

	item := &entity.Item{
		SourceName:    strings.TrimSpace(req.SourceName),
		URL:           strings.TrimSpace(req.URL),
		URLCanon:      canon,
		Title:         title,
		Body:          strings.TrimSpace(req.Body),
		PublishedAt:   req.PublishedAt,
		Fingerprint:   utils.Fingerprint(title, canon),
		BusinessScore: req.BusinessScore,
		DFOScore:      req.DFOScore,
		HasCompany:    req.HasCompany,
		Reasons:       reasons,
	}
	if req.FetchedAt != nil {
		item.FetchedAt = *req.FetchedAt
	}

	created, err := s.itemRepo.CreateIgnoreConflict(ctx, item)
	if err != nil {
		s.logger.Error("Failed to insert item", logger.ErrorField(err), logger.StringField("url", canon))
		return nil, fmt.Errorf("insert item: %w", err)
	}

	resp := &dto.CreateItemResponse{Created: created, URLCanon: canon}
	if created {
		resp.ID = item.ID
		return resp, nil
	}

	existing, err := s.itemRepo.FindByURLCanon(ctx, canon)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if existing == nil {
		// the conflict was on (source_name, fingerprint) under a differently cased URL
		existing, err = s.itemRepo.FindByFingerprint(ctx, item.SourceName, item.Fingerprint)
		if err != nil {
			return nil, fmt.Errorf("find item: %w", err)
		}
	}
	if existing != nil {
		resp.ID = existing.ID
	}
	s.logger.Debug("Duplicate item ignored", logger.StringField("url", canon))
	return resp, nil
}

func (s *itemService) AddAnalysis(ctx context.Context, itemID uint, req *dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error) {
	if req.InterestScore < 0 || req.InterestScore > 10 {
		return nil, newValidationError("interest_score", "must be between 0 and 10, got %d", req.InterestScore)
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	analysis := &entity.ItemAnalysis{
		ItemID:        itemID,
		Model:         req.Model,
		PromptVersion: req.PromptVersion,
		IsDFO:         req.IsDFO,
		IsBusiness:    req.IsBusiness,
		IsDFOBusiness: req.IsDFOBusiness,
		InterestScore: req.InterestScore,
		TitleShort:    strings.TrimSpace(req.TitleShort),
		Bulletin:      strings.TrimSpace(req.Bulletin),
		Summary:       strings.TrimSpace(req.Summary),
		Why:           strings.TrimSpace(req.Why),
		Tags:          tagsJSON,
	}
	if err := s.itemRepo.AddAnalysis(ctx, analysis); err != nil {
		s.logger.Error("Failed to insert analysis", logger.ErrorField(err), logger.Field("item_id", itemID))
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	return &dto.CreateAnalysisResponse{ID: analysis.ID, ItemID: itemID}, nil
}

// PurgeUnused removes items older than the given number of calendar days that no digest uses.
func (s *itemService) PurgeUnused(ctx context.Context, olderThanDays int) (*dto.PurgeResponse, error) {
	if olderThanDays < 1 {
		return nil, newValidationError("older_than_days", "must be positive, got %d", olderThanDays)
	}

	today := utils.TruncateDay(time.Now(), s.loc)
	before := utils.AddDays(today, -olderThanDays)

	deleted, err := s.itemRepo.PurgeUnused(ctx, before)
	if err != nil {
		s.logger.Error("Failed to purge items", logger.ErrorField(err))
		return nil, fmt.Errorf("purge items: %w", err)
	}
	s.logger.Info("Purged unused items", logger.IntField("deleted", int(deleted)), logger.Field("before", before))
	return &dto.PurgeResponse{Deleted: deleted}, nil
}

const (
	maxListWindowHours = 168
	maxItemScore       = 4
)

// ListRecent lists items from the last window_hours by effective time, newest first.
func (s *itemService) ListRecent(ctx context.Context, req dto.ListItemsRequest) (*dto.ListItemsResponse, error) {
	switch {
	case req.WindowHours < 1 || req.WindowHours > maxListWindowHours:
		return nil, newValidationError("window_hours", "must be between 1 and %d, got %d", maxListWindowHours, req.WindowHours)
	case req.MinBusiness < 0 || req.MinBusiness > maxItemScore:
		return nil, newValidationError("min_business", "must be between 0 and %d, got %d", maxItemScore, req.MinBusiness)
	case req.MinDFO < 0 || req.MinDFO > maxItemScore:
		return nil, newValidationError("min_dfo", "must be between 0 and %d, got %d", maxItemScore, req.MinDFO)
	case req.Limit < 1 || req.Limit > maxListLimit:
		return nil, newValidationError("limit", "must be between 1 and %d, got %d", maxListLimit, req.Limit)
	}

	q := repository.RecentItemsQuery{
		Since:          time.Now().Add(-time.Duration(req.WindowHours) * time.Hour),
		MinBusiness:    req.MinBusiness,
		MinDFO:         req.MinDFO,
		RequireCompany: req.RequireCompany,
		Limit:          req.Limit,
	}
	if req.ExcludeWar {
		q.Exclude = s.filter
	}

	items, err := s.itemRepo.ListRecent(ctx, q)
	if err != nil {
		s.logger.Error("Failed to list recent items", logger.ErrorField(err))
		return nil, fmt.Errorf("list recent items: %w", err)
	}
	if items == nil {
		items = []entity.Item{}
	}
	return &dto.ListItemsResponse{Count: len(items), Items: items}, nil
}
