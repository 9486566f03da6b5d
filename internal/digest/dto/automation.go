package dto

// Automation run statuses.
const (
	RunStatusQueued  = "queued"
	RunStatusRunning = "running"
	RunStatusDone    = "done"
	RunStatusFailed  = "failed"
)

// AutomationRunRequest is the payload placed on the automation stream.
type AutomationRunRequest struct {
	RunID       string `json:"run_id"`
	Day         string `json:"day"`
	ForceDigest bool   `json:"force_digest"`
	ForceScript bool   `json:"force_script"`
	SkipNotify  bool   `json:"skip_notify"`
	TriggeredBy string `json:"triggered_by"`
}

// AutomationRunResponse acknowledges a queued run.
type AutomationRunResponse struct {
	RunID string `json:"run_id"`
	Day   string `json:"day"`
}

// StepState is the recorded outcome of one pipeline step.
type StepState struct {
	Status string            `json:"status"`
	TS     string            `json:"ts"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// AutomationRun is the stored state of a run.
type AutomationRun struct {
	RunID       string               `json:"run_id"`
	Status      string               `json:"status"`
	Day         string               `json:"day"`
	TriggeredBy string               `json:"triggered_by,omitempty"`
	CreatedAt   string               `json:"created_at,omitempty"`
	UpdatedAt   string               `json:"updated_at,omitempty"`
	StartedAt   string               `json:"started_at,omitempty"`
	FinishedAt  string               `json:"finished_at,omitempty"`
	Error       string               `json:"error,omitempty"`
	Steps       map[string]StepState `json:"steps"`
}

// AutomationRunDetail is a run with its log tail.
type AutomationRunDetail struct {
	Run *AutomationRun `json:"run"`
	Log []string       `json:"log"`
}

// AutomationStateResponse is the global automation state hash.
type AutomationStateResponse struct {
	State map[string]string `json:"state"`
}

// AutomationRunsResponse lists run ids, newest first.
type AutomationRunsResponse struct {
	Total  int64    `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
	Items  []string `json:"items"`
}

// DigestReadyEvent is published for downstream media workers once a digest has a script.
type DigestReadyEvent struct {
	Day      string `json:"day"`
	DigestID uint   `json:"digest_id"`
	Status   string `json:"status"`
	Items    int    `json:"items"`
	RunID    string `json:"run_id,omitempty"`
}
