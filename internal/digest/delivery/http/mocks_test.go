package http

import (
	"context"
	"time"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/entity"

	"github.com/stretchr/testify/mock"
)

type mockDigestService struct {
	mock.Mock
}

func (m *mockDigestService) DefaultParams() entity.DigestParams {
	return entity.DefaultDigestParams()
}

func (m *mockDigestService) Location() *time.Location {
	return time.UTC
}

func (m *mockDigestService) Ensure(ctx context.Context, day string, params entity.DigestParams) (*entity.DailyDigest, error) {
	args := m.Called(ctx, day, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailyDigest), args.Error(1)
}

func (m *mockDigestService) CreateOrRefill(ctx context.Context, day string, params entity.DigestParams, refill, force bool) (*dto.BuildDigestResponse, error) {
	args := m.Called(ctx, day, params, refill, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BuildDigestResponse), args.Error(1)
}

func (m *mockDigestService) GetByDay(ctx context.Context, day string) (*dto.DigestResponse, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DigestResponse), args.Error(1)
}

func (m *mockDigestService) List(ctx context.Context, limit, offset int) (*dto.ListDigestsResponse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListDigestsResponse), args.Error(1)
}

func (m *mockDigestService) ComputeDiagnostics(ctx context.Context, day string, params entity.DigestParams) (*dto.DiagnosticsResponse, error) {
	args := m.Called(ctx, day, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DiagnosticsResponse), args.Error(1)
}

func (m *mockDigestService) AttachArtifacts(ctx context.Context, day string, req *dto.ArtifactsRequest) (*dto.DigestResponse, error) {
	args := m.Called(ctx, day, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DigestResponse), args.Error(1)
}

func (m *mockDigestService) Invalidate(day string) {
	m.Called(day)
}

type mockScriptService struct {
	mock.Mock
}

func (m *mockScriptService) GenerateScript(ctx context.Context, day string, force bool) (*dto.DigestResponse, error) {
	args := m.Called(ctx, day, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DigestResponse), args.Error(1)
}

type mockItemService struct {
	mock.Mock
}

func (m *mockItemService) CreateItem(ctx context.Context, req *dto.CreateItemRequest) (*dto.CreateItemResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateItemResponse), args.Error(1)
}

func (m *mockItemService) AddAnalysis(ctx context.Context, itemID uint, req *dto.CreateAnalysisRequest) (*dto.CreateAnalysisResponse, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateAnalysisResponse), args.Error(1)
}

func (m *mockItemService) PurgeUnused(ctx context.Context, olderThanDays int) (*dto.PurgeResponse, error) {
	args := m.Called(ctx, olderThanDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PurgeResponse), args.Error(1)
}

func (m *mockItemService) ListRecent(ctx context.Context, req dto.ListItemsRequest) (*dto.ListItemsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListItemsResponse), args.Error(1)
}

type mockAutomationService struct {
	mock.Mock
}

func (m *mockAutomationService) Enqueue(ctx context.Context, req dto.AutomationRunRequest) (*dto.AutomationRunResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AutomationRunResponse), args.Error(1)
}

func (m *mockAutomationService) ProcessTask(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockAutomationService) Run(ctx context.Context, req *dto.AutomationRunRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAutomationService) State(ctx context.Context) (*dto.AutomationStateResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AutomationStateResponse), args.Error(1)
}

func (m *mockAutomationService) ListRuns(ctx context.Context, limit, offset int) (*dto.AutomationRunsResponse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AutomationRunsResponse), args.Error(1)
}

func (m *mockAutomationService) GetRun(ctx context.Context, runID string, logLimit int) (*dto.AutomationRunDetail, error) {
	args := m.Called(ctx, runID, logLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AutomationRunDetail), args.Error(1)
}
