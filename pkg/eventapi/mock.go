package eventapi

import (
	"context"
	"sync"

	"github.com/abrezinsky/judgedesk/internal/errors"
	"github.com/abrezinsky/judgedesk/internal/models"
)

// MockClient is an in-memory event API for tests and offline demos
type MockClient struct {
	mu           sync.Mutex
	baseURL      string
	token        string
	scores       map[int][]models.Score
	progress     map[int]*models.Progress
	myScores     map[int][]models.JudgingScore
	assignments  []models.Assignment
	participants []models.Participant
	errs         map[string]error
	hook         func(ctx context.Context, endpoint string) error
	calls        map[string]int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithScores sets the scores returned for a participant
func WithScores(participantID int, scores []models.Score) MockOption {
	return func(m *MockClient) {
		m.scores[participantID] = scores
	}
}

// WithProgress sets the progress snapshot for a program
func WithProgress(p models.Progress) MockOption {
	return func(m *MockClient) {
		m.progress[p.Program] = &p
	}
}

// WithMyScores sets the judge's submissions for a program
func WithMyScores(programID int, scores []models.JudgingScore) MockOption {
	return func(m *MockClient) {
		m.myScores[programID] = scores
	}
}

// WithAssignments sets the judge's assignments
func WithAssignments(a []models.Assignment) MockOption {
	return func(m *MockClient) {
		m.assignments = a
	}
}

// WithParticipants sets the registrant list
func WithParticipants(p []models.Participant) MockOption {
	return func(m *MockClient) {
		m.participants = p
	}
}

// WithError makes every call to endpoint fail with err
func WithError(endpoint string, err error) MockOption {
	return func(m *MockClient) {
		m.errs[endpoint] = err
	}
}

// WithHook runs fn at the start of every call; a non-nil result is returned as the call's error.
// Tests use it to block or reorder responses.
func WithHook(fn func(ctx context.Context, endpoint string) error) MockOption {
	return func(m *MockClient) {
		m.hook = fn
	}
}

// NewMockClient creates a mock with the default sample data
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		baseURL:      "http://mock-events.local",
		scores:       map[int][]models.Score{},
		progress:     map[int]*models.Progress{},
		myScores:     map[int][]models.JudgingScore{},
		assignments:  DefaultMockAssignments(),
		participants: DefaultMockParticipants(),
		errs:         map[string]error{},
		calls:        map[string]int{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockClient) begin(ctx context.Context, endpoint string) error {
	m.mu.Lock()
	m.calls[endpoint]++
	err := m.errs[endpoint]
	hook := m.hook
	m.mu.Unlock()

	if hook != nil {
		if hookErr := hook(ctx, endpoint); hookErr != nil {
			return hookErr
		}
	}
	return err
}

// Calls returns how often endpoint was called
func (m *MockClient) Calls(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[endpoint]
}

// SetError changes the error for endpoint; nil clears it
func (m *MockClient) SetError(endpoint string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, endpoint)
		return
	}
	m.errs[endpoint] = err
}

// SetProgress replaces a program's progress snapshot
func (m *MockClient) SetProgress(p models.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[p.Program] = &p
}

func (m *MockClient) BaseURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseURL
}

func (m *MockClient) SetBaseURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseURL = url
}

func (m *MockClient) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// Token returns the last token set
func (m *MockClient) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MockClient) FetchParticipantScores(ctx context.Context, participantID int) ([]models.Score, error) {
	if err := m.begin(ctx, EndpointScores); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Score(nil), m.scores[participantID]...), nil
}

func (m *MockClient) FetchJudgeProgress(ctx context.Context, programID int) (*models.Progress, error) {
	if err := m.begin(ctx, EndpointProgress); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.progress[programID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MockClient) FetchMyScores(ctx context.Context, programID int) ([]models.JudgingScore, error) {
	if err := m.begin(ctx, EndpointMyScores); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.JudgingScore(nil), m.myScores[programID]...), nil
}

func (m *MockClient) FetchAssignments(ctx context.Context) ([]models.Assignment, error) {
	if err := m.begin(ctx, EndpointAssignments); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Assignment(nil), m.assignments...), nil
}

func (m *MockClient) FetchParticipants(ctx context.Context, filter models.ParticipantFilter) ([]models.Participant, error) {
	if err := m.begin(ctx, EndpointParticipants); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Participant
	for _, p := range m.participants {
		if filter.Program != 0 && p.Program != filter.Program {
			continue
		}
		if filter.PaymentStatus != "" && p.PaymentStatus != filter.PaymentStatus {
			continue
		}
		if filter.Search != "" && !containsFold(p.Name, filter.Search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *MockClient) ApprovePayment(ctx context.Context, participantID int) error {
	if err := m.begin(ctx, EndpointApprove); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.participants {
		if m.participants[i].ID == participantID {
			m.participants[i].PaymentStatus = models.PaymentApproved
			return nil
		}
	}
	return errors.NotFoundf("participant %d not found", participantID)
}

// DefaultMockAssignments returns sample assignments
func DefaultMockAssignments() []models.Assignment {
	return []models.Assignment{
		{Program: 1, ProgramName: "Robotics Showcase"},
		{Program: 2, ProgramName: "Maker Fair"},
	}
}

// DefaultMockParticipants returns sample registrants
func DefaultMockParticipants() []models.Participant {
	return []models.Participant{
		{ID: 11, Name: "Ada Okafor", Program: 1, Phone: "+15550100", PaymentStatus: models.PaymentPending},
		{ID: 12, Name: "Jun Park", Program: 1, Phone: "+15550101", PaymentStatus: models.PaymentApproved},
		{ID: 13, Name: "Maria Silva", Program: 2, Phone: "+15550102", PaymentStatus: models.PaymentPending},
	}
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
