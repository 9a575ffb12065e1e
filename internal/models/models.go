package models

// CategoryRef identifies the rubric category a criterion belongs to
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Criteria is a single gradable item
type Criteria struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Category CategoryRef `json:"category"`
}

// Score is one judge's mark for one criterion of one contestant.
// Value keeps the decimal string sent by the event API.
type Score struct {
	ID         int      `json:"id"`
	Judge      int      `json:"judge"`
	Contestant int      `json:"contestant"`
	Criteria   Criteria `json:"criteria"`
	Value      string   `json:"score"`
}

// JudgingScore is a submission made by the current judge
type JudgingScore struct {
	ID          int    `json:"id"`
	Contestant  int    `json:"contestant"`
	Program     int    `json:"program"`
	SubmittedAt string `json:"submitted_at"`
}

// Progress is the event API's completion snapshot for one judge and program
type Progress struct {
	Program              int     `json:"program"`
	ScoredCount          int     `json:"scored_count"`
	TotalAssigned        int     `json:"total_assigned"`
	Remaining            int     `json:"remaining"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// Assignment is a program the current judge is allocated to
type Assignment struct {
	Program     int    `json:"program"`
	ProgramName string `json:"program_name"`
}

// Payment states reported by the event API
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
)

// Participant is a registrant of a program
type Participant struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Program       int    `json:"program"`
	Phone         string `json:"phone,omitempty"`
	PaymentStatus string `json:"payment_status"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ParticipantFilter selects registrants; the zero value selects everyone
type ParticipantFilter struct {
	Program       int    `json:"program,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	Search        string `json:"search,omitempty"`
}
