package ai

// Outcome says how a Suggestion came to be, so callers can tell a dead
// backend from an unreadable reply without inspecting field contents.
type Outcome int

const (
	// OutcomeModel: fields were parsed out of a live model response.
	OutcomeModel Outcome = iota
	// OutcomeFallback: no backend configured, deterministic defaults.
	OutcomeFallback
	// OutcomeUnparsable: the model replied but no JSON could be recovered.
	OutcomeUnparsable
	// OutcomeBackendError: the call itself failed; Err holds the message.
	OutcomeBackendError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeModel:
		return "model"
	case OutcomeFallback:
		return "fallback"
	case OutcomeUnparsable:
		return "unparsable"
	case OutcomeBackendError:
		return "backend_error"
	}
	return "unknown"
}

// Suggestion is the ephemeral result of one enrichment call. Presence of a
// field never implies validity: the merge policy re-checks everything before
// touching a task. Pointer fields distinguish "absent" from zero values;
// Deadline stays a raw string because date validation belongs to the merge.
type Suggestion struct {
	TaskID    int64  `json:"id,omitempty"`
	TaskTitle string `json:"title,omitempty"`

	PriorityScore       *int    `json:"priority_score,omitempty"`
	Deadline            *string `json:"deadline,omitempty"`
	ImprovedDescription string  `json:"improved_description,omitempty"`
	SuggestedCategory   string  `json:"suggested_category,omitempty"`

	Outcome Outcome `json:"-"`
	Err     string  `json:"error,omitempty"`
}

// Empty reports whether the suggestion carries nothing applicable.
func (s Suggestion) Empty() bool {
	return s.PriorityScore == nil &&
		s.Deadline == nil &&
		s.ImprovedDescription == "" &&
		s.SuggestedCategory == ""
}
