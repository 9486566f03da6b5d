package strategy

import (
	"context"
	"encoding/json"
	"strconv"

	"dfo-news-digest/internal/digest/dto"
)

// ScriptStepStrategy makes sure the digest has a script.
type ScriptStepStrategy struct {
	scripts ScriptGenerator
}

// NewScriptStepStrategy creates a new instance of ScriptStepStrategy.
func NewScriptStepStrategy(scripts ScriptGenerator) *ScriptStepStrategy {
	return &ScriptStepStrategy{scripts: scripts}
}

// GetName returns the step name this strategy handles.
func (s *ScriptStepStrategy) GetName() string {
	return StepScript
}

func (s *ScriptStepStrategy) Execute(ctx context.Context, run *dto.AutomationRunRequest) (map[string]string, error) {
	digest, err := s.scripts.GenerateScript(ctx, run.Day, run.ForceScript)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"model":    digest.ScriptModel,
		"segments": strconv.Itoa(countSegments(digest)),
	}, nil
}

func countSegments(d *dto.DigestResponse) int {
	var segments []json.RawMessage
	if err := json.Unmarshal(d.Script, &segments); err != nil {
		return 0
	}
	return len(segments)
}
