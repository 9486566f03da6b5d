package service

import (
	"context"
	"encoding/json"
	"fmt"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/logger"

	"github.com/samber/lo"
)

// ScriptService turns a filled digest into a spoken script.
type ScriptService interface {
	GenerateScript(ctx context.Context, day string, force bool) (*dto.DigestResponse, error)
}

// NewScriptService creates a new ScriptService.
func NewScriptService(
	digestService DigestService,
	digestRepo repository.DigestRepository,
	scriptRepo repository.ScriptRepository,
	log *logger.Logger,
	tone string,
) ScriptService {
	return &scriptService{
		digestService: digestService,
		digestRepo:    digestRepo,
		scriptRepo:    scriptRepo,
		logger:        log,
		tone:          tone,
	}
}

type scriptService struct {
	digestService DigestService
	digestRepo    repository.DigestRepository
	scriptRepo    repository.ScriptRepository
	logger        *logger.Logger
	tone          string
}

// GenerateScript returns the stored script unless force is set or none exists yet.
func (s *scriptService) GenerateScript(ctx context.Context, day string, force bool) (*dto.DigestResponse, error) {
	digest, err := s.digestService.GetByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(digest.Items) == 0 {
		return nil, ErrDigestEmpty
	}
	if !force && hasScript(digest) {
		return digest, nil
	}

	req := &dto.ScriptRequest{
		Day:   day,
		Tone:  s.tone,
		Items: lo.Map(digest.Items, toScriptItem),
	}

	s.logger.Info("Generating digest script", logger.StringField("day", day), logger.IntField("items", len(req.Items)), logger.Field("force", force))

	result, err := s.scriptRepo.GenerateScript(ctx, req)
	if err != nil {
		s.logger.Error("Failed to generate digest script", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("generate script %s: %w", day, err)
	}

	segments, err := json.Marshal(result.Segments)
	if err != nil {
		return nil, fmt.Errorf("marshal script: %w", err)
	}
	if err := s.digestRepo.SaveScript(ctx, digest.ID, segments, result.Model); err != nil {
		s.logger.Error("Failed to save digest script", logger.ErrorField(err), logger.StringField("day", day))
		return nil, fmt.Errorf("save script %s: %w", day, err)
	}
	s.digestService.Invalidate(day)

	s.logger.Info("Digest script stored", logger.StringField("day", day), logger.IntField("segments", len(result.Segments)), logger.StringField("model", result.Model))
	return s.digestService.GetByDay(ctx, day)
}

func hasScript(d *dto.DigestResponse) bool {
	s := string(d.Script)
	return s != "" && s != "null" && s != "[]"
}

func toScriptItem(e entity.DigestEntry, _ int) dto.ScriptItem {
	title := lo.FromPtr(e.TitleShort)
	if title == "" {
		title = e.Title
	}
	return dto.ScriptItem{
		Rank:       e.Rank,
		ItemID:     e.ItemID,
		TitleShort: title,
		Bulletin:   lo.FromPtr(e.Bulletin),
		Summary:    lo.FromPtr(e.Summary),
		Why:        lo.FromPtr(e.Why),
		SourceName: e.SourceName,
		URL:        e.URL,
	}
}
