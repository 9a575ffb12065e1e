package services

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/abrezinsky/judgedesk/internal/errors"
	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/provider"
	"github.com/abrezinsky/judgedesk/internal/repository"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// RegistrantList is the registrant table for one filter
type RegistrantList struct {
	Filter       models.ParticipantFilter `json:"filter"`
	Participants []models.Participant     `json:"participants"`
	Total        int                      `json:"total"`
	Pending      int                      `json:"pending"`
	Loaded       bool                     `json:"loaded"`
	UpdatedAt    *time.Time               `json:"updated_at,omitempty"`
}

// RegistrantService lists registrants and approves their payments
type RegistrantService struct {
	log       logger.Logger
	client    eventapi.Client
	approvals repository.ApprovalRepository
	list      *provider.Provider[models.ParticipantFilter, []models.Participant]

	mu          sync.RWMutex
	broadcaster Broadcaster
}

// NewRegistrantService creates a new RegistrantService
func NewRegistrantService(log logger.Logger, client eventapi.Client, approvals repository.ApprovalRepository, m *metrics.Metrics) *RegistrantService {
	s := &RegistrantService{log: log, client: client, approvals: approvals}
	s.list = provider.New("registrants", func(ctx context.Context, f models.ParticipantFilter) ([]models.Participant, error) {
		return client.FetchParticipants(ctx, f)
	}, m)
	s.list.OnUpdate(func(snap provider.Snapshot[models.ParticipantFilter, []models.Participant]) {
		s.mu.RLock()
		b := s.broadcaster
		s.mu.RUnlock()
		if b != nil {
			b.BroadcastRegistrants(toRegistrantList(snap))
		}
	})
	return s
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *RegistrantService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

// normalizeFilter trims the search term and checks the payment status
func normalizeFilter(f models.ParticipantFilter) (models.ParticipantFilter, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.PaymentStatus = strings.ToLower(strings.TrimSpace(f.PaymentStatus))
	if f.Program < 0 {
		return f, ErrInvalidProgram
	}
	switch f.PaymentStatus {
	case "", models.PaymentPending, models.PaymentApproved:
	default:
		return f, ErrInvalidPaymentStatus
	}
	return f, nil
}

// List fetches the registrants matching filter. A request overtaken by a
// newer filter returns a Conflict error and its response is discarded.
func (s *RegistrantService) List(ctx context.Context, filter models.ParticipantFilter) (*RegistrantList, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	snap, err := s.list.Refresh(ctx, filter)
	if err != nil {
		if stderrors.Is(err, provider.ErrSuperseded) {
			return nil, errors.Conflict("registrant filter changed while loading")
		}
		s.log.Warn("Failed to fetch registrants", "filter", filter, "error", err)
		return nil, err
	}
	return toRegistrantList(snap), nil
}

// Current returns the last loaded list without refetching
func (s *RegistrantService) Current() *RegistrantList {
	return toRegistrantList(s.list.Snapshot())
}

// ApprovePayment marks a participant's payment approved on the event API,
// then updates the loaded list in place and records the approval locally.
func (s *RegistrantService) ApprovePayment(ctx context.Context, participantID int) (*models.Participant, error) {
	if participantID <= 0 {
		return nil, ErrInvalidParticipant
	}

	if err := s.client.ApprovePayment(ctx, participantID); err != nil {
		s.log.Warn("Payment approval failed", "participant", participantID, "error", err)
		return nil, err
	}

	approved := models.Participant{ID: participantID, PaymentStatus: models.PaymentApproved}
	patched := s.list.Patch(func(list []models.Participant) []models.Participant {
		out := make([]models.Participant, len(list))
		copy(out, list)
		for i := range out {
			if out[i].ID == participantID {
				out[i].PaymentStatus = models.PaymentApproved
				approved = out[i]
			}
		}
		return out
	})
	if !patched {
		s.log.Debug("No registrant list loaded to update", "participant", participantID)
	}

	if err := s.approvals.RecordApproval(ctx, participantID, approved.Name); err != nil {
		s.log.Warn("Failed to record payment approval", "participant", participantID, "error", err)
	}
	s.log.Info("Payment approved", "participant", participantID, "name", approved.Name)
	return &approved, nil
}

// RecentApprovals returns the local approval log, newest first
func (s *RegistrantService) RecentApprovals(ctx context.Context, limit int) ([]repository.Approval, error) {
	approvals, err := s.approvals.ListApprovals(ctx, limit)
	if err != nil {
		return nil, err
	}
	if approvals == nil {
		approvals = []repository.Approval{}
	}
	return approvals, nil
}

func toRegistrantList(snap provider.Snapshot[models.ParticipantFilter, []models.Participant]) *RegistrantList {
	l := &RegistrantList{
		Filter:       snap.Deps,
		Participants: []models.Participant{},
		Loaded:       snap.Loaded,
	}
	if snap.Loaded && snap.Value != nil {
		l.Participants = snap.Value
	}
	for _, p := range l.Participants {
		if p.PaymentStatus == models.PaymentPending {
			l.Pending++
		}
	}
	l.Total = len(l.Participants)
	if !snap.UpdatedAt.IsZero() {
		t := snap.UpdatedAt
		l.UpdatedAt = &t
	}
	return l
}
