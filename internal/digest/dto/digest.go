package dto

import (
	"time"

	"dfo-news-digest/internal/entity"

	"gorm.io/datatypes"
)

// DigestCounts are the eligible candidate counts behind a digest day.
type DigestCounts struct {
	CandidatesTotal int64 `json:"candidates_total"`
	PreferBucket    int64 `json:"prefer_bucket"`
	FallbackBucket  int64 `json:"fallback_bucket"`
}

// DiagnosticsResponse explains what a fill for a day would see.
type DiagnosticsResponse struct {
	Day             string       `json:"day"`
	PreferDays      []string     `json:"prefer_days"`
	MaxLookbackDays int          `json:"max_lookback_days"`
	Counts          DigestCounts `json:"counts"`
}

// DigestResponse is a digest with its ranked items.
type DigestResponse struct {
	ID              uint                 `json:"id"`
	Day             string               `json:"day"`
	Status          entity.DigestStatus  `json:"status"`
	Note            string               `json:"note"`
	Params          datatypes.JSON       `json:"params" swaggertype:"object"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	ItemsCount      int                  `json:"items_count"`
	Items           []entity.DigestEntry `json:"items"`
	Script          datatypes.JSON       `json:"script,omitempty" swaggertype:"array,object"`
	ScriptModel     string               `json:"script_model,omitempty"`
	ScriptCreatedAt *time.Time           `json:"script_created_at,omitempty"`
	AudioRef        string               `json:"audio_ref,omitempty"`
	VideoRef        string               `json:"video_ref,omitempty"`
}

// BuildDigestResponse is the outcome of a create-or-refill call.
type BuildDigestResponse struct {
	Digest      *DigestResponse      `json:"digest"`
	Diagnostics *DiagnosticsResponse `json:"diagnostics"`
	Changed     bool                 `json:"changed"`
	Inserted    int                  `json:"inserted"`
}

// ListDigestsResponse is one page of digest summaries.
type ListDigestsResponse struct {
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Items  []entity.DigestSummary `json:"items"`
}

// ArtifactsRequest attaches rendered media references to a digest.
type ArtifactsRequest struct {
	AudioRef *string `json:"audio_ref"`
	VideoRef *string `json:"video_ref"`
}

// NewDigestResponse maps a digest row and its entries.
func NewDigestResponse(d *entity.DailyDigest, items []entity.DigestEntry) *DigestResponse {
	if items == nil {
		items = []entity.DigestEntry{}
	}
	return &DigestResponse{
		ID:              d.ID,
		Day:             d.Day,
		Status:          d.Status,
		Note:            d.Note,
		Params:          d.Params,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		ItemsCount:      len(items),
		Items:           items,
		Script:          d.Script,
		ScriptModel:     d.ScriptModel,
		ScriptCreatedAt: d.ScriptCreatedAt,
		AudioRef:        d.AudioRef,
		VideoRef:        d.VideoRef,
	}
}
