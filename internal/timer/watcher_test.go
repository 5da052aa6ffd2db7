package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
	"github.com/hammamikhairi/staytab/internal/pricing"
)

// collectingNotifier captures messages for assertions.
type collectingNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (n *collectingNotifier) Notify(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *collectingNotifier) NotifyUrgent(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urgent = append(n.urgent, msg)
	return nil
}

func newTestWatcher(opts ...WatcherOption) (*Watcher, *collectingNotifier) {
	n := &collectingNotifier{}
	return NewWatcher(n, pricing.DefaultRules(), logger.New(logger.LevelOff, nil), opts...), n
}

// bill builds the result the calculator would produce for a stay.
func bill(stay int) domain.BillingResult {
	calc := pricing.New(pricing.DefaultRules())
	return domain.BillingResult{
		Active:         true,
		StayMinutes:    stay,
		ExtensionCount: calc.ExtensionCount(stay),
	}
}

func TestWatcherMinutesUntil(t *testing.T) {
	w, _ := newTestWatcher()

	tests := []struct {
		n, stay, want int
	}{
		{1, 0, 61},
		{1, 56, 5},
		{1, 60, 1},
		{1, 61, 0},
		{2, 61, 30},
		{2, 86, 5},
		{3, 120, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.MinutesUntil(tt.n, tt.stay), "n=%d stay=%d", tt.n, tt.stay)
	}
}

func TestWatcherWarnsOnceBeforeExtension(t *testing.T) {
	w, n := newTestWatcher()
	ctx := context.Background()

	for stay := 40; stay <= 60; stay++ {
		w.Observe(ctx, bill(stay))
	}

	require.Len(t, n.messages, 1)
	assert.Equal(t, "[Extension] Extension 1 starts in 5 min.", n.messages[0])
	assert.Empty(t, n.urgent)
}

func TestWatcherAnnouncesNewUnit(t *testing.T) {
	w, n := newTestWatcher()
	ctx := context.Background()

	w.Observe(ctx, bill(59))
	r := bill(61)
	r.OrShortage = 1
	w.Observe(ctx, r)
	w.Observe(ctx, bill(62))

	require.Len(t, n.urgent, 1)
	assert.Equal(t, "[Extension] Stay entered extension 1 (61 min). 1 drink or amuse order(s) missing.", n.urgent[0])

	for stay := 63; stay <= 91; stay++ {
		w.Observe(ctx, bill(stay))
	}
	assert.Len(t, n.urgent, 2)
	assert.Len(t, n.messages, 2, "one lead warning per unit")
}

func TestWatcherResetsWhenInactive(t *testing.T) {
	w, n := newTestWatcher()
	ctx := context.Background()

	w.Observe(ctx, bill(70))
	w.Observe(ctx, domain.BillingResult{})
	w.Observe(ctx, bill(70))

	assert.Len(t, n.urgent, 2, "a new stay announces its first unit again")
}

func TestWatcherEntryMovedForward(t *testing.T) {
	w, n := newTestWatcher()
	ctx := context.Background()

	w.Observe(ctx, bill(95))
	w.Observe(ctx, bill(30))
	w.Observe(ctx, bill(61))

	assert.Len(t, n.urgent, 2)
}

func TestWatcherLeadTimeOption(t *testing.T) {
	w, n := newTestWatcher(WithLeadTime(0))
	ctx := context.Background()

	for stay := 50; stay <= 60; stay++ {
		w.Observe(ctx, bill(stay))
	}
	assert.Empty(t, n.messages)

	w, n = newTestWatcher(WithLeadTime(10 * time.Minute))
	w.Observe(ctx, bill(51))
	assert.Equal(t, []string{"[Extension] Extension 1 starts in 10 min."}, n.messages)
}
