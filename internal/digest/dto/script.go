package dto

// Segment types of a digest script.
const (
	SegmentIntro = "intro"
	SegmentItem  = "item"
	SegmentOutro = "outro"
)

// ScriptItem is one digest entry handed to the script writer.
type ScriptItem struct {
	Rank       int    `json:"rank"`
	ItemID     uint   `json:"item_id"`
	TitleShort string `json:"title_short"`
	Bulletin   string `json:"bulletin"`
	Summary    string `json:"summary"`
	Why        string `json:"why"`
	SourceName string `json:"source_name"`
	URL        string `json:"url"`
}

// ScriptRequest is the input of a script generation call.
type ScriptRequest struct {
	Day   string       `json:"day"`
	Tone  string       `json:"tone"`
	Items []ScriptItem `json:"items"`
}

// ScriptSegment is one spoken block of the digest script.
type ScriptSegment struct {
	Type       string `json:"type"`
	Rank       int    `json:"rank,omitempty"`
	ItemID     uint   `json:"item_id,omitempty"`
	Text       string `json:"text"`
	Transition string `json:"transition,omitempty"`
}

// ScriptResult is what a provider returned.
type ScriptResult struct {
	Model    string          `json:"model"`
	Segments []ScriptSegment `json:"segments"`
}
