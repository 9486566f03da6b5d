package strategy

import (
	"context"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/entity"
)

// Pipeline step names, in execution order.
const (
	StepDigest  = "digest"
	StepScript  = "script"
	StepPublish = "publish"
	StepNotify  = "notify"
)

// StepStrategy is one stage of the daily automation pipeline.
// Execute returns short key/value facts recorded on the run.
type StepStrategy interface {
	Execute(ctx context.Context, run *dto.AutomationRunRequest) (map[string]string, error)
	GetName() string
}

// DigestBuilder is the part of the digest service the pipeline drives.
type DigestBuilder interface {
	DefaultParams() entity.DigestParams
	CreateOrRefill(ctx context.Context, day string, params entity.DigestParams, refill, force bool) (*dto.BuildDigestResponse, error)
	GetByDay(ctx context.Context, day string) (*dto.DigestResponse, error)
}

// ScriptGenerator produces and stores the digest script.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, day string, force bool) (*dto.DigestResponse, error)
}
