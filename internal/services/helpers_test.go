package services_test

import (
	"sync"
	"testing"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/services"
	"github.com/abrezinsky/judgedesk/internal/testutil"
	"github.com/abrezinsky/judgedesk/pkg/eventapi"
)

// recordingBroadcaster captures broadcasts for assertions
type recordingBroadcaster struct {
	mu          sync.Mutex
	progress    []*services.Dashboard
	registrants []*services.RegistrantList
}

func (b *recordingBroadcaster) BroadcastProgress(d *services.Dashboard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.progress = append(b.progress, d)
}

func (b *recordingBroadcaster) BroadcastRegistrants(l *services.RegistrantList) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registrants = append(b.registrants, l)
}

func (b *recordingBroadcaster) lastProgress() *services.Dashboard {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.progress) == 0 {
		return nil
	}
	return b.progress[len(b.progress)-1]
}

func (b *recordingBroadcaster) lastRegistrants() *services.RegistrantList {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.registrants) == 0 {
		return nil
	}
	return b.registrants[len(b.registrants)-1]
}

func newSettings(t *testing.T, client eventapi.Client) *services.SettingsService {
	t.Helper()
	return services.NewSettingsService(logger.Nop(), testutil.NewTestRepository(t), client)
}
