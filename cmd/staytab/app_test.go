package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/staytab/internal/conversation"
	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
	"github.com/hammamikhairi/staytab/internal/timer"
)

// recorder captures everything the REPL prints.
type recorder struct {
	lines   []string
	urgent  []string
	notices []string
	input   chan string
}

func (r *recorder) Println(a ...interface{}) {
	for _, v := range a {
		if s, ok := v.(string); ok {
			r.lines = append(r.lines, s)
		}
	}
}

func (r *recorder) PrintHeader(text string) {
	r.lines = append(r.lines, text)
}

func (r *recorder) PrintLine(text string) {
	r.lines = append(r.lines, text)
}

func (r *recorder) PrintHint(text string) {
	r.lines = append(r.lines, text)
}

func (r *recorder) PrintUrgent(text string) {
	r.urgent = append(r.urgent, text)
}

func (r *recorder) PrintNotice(text string, _ bool) {
	if text != "" {
		r.notices = append(r.notices, text)
	}
}

func (r *recorder) PrintBlock(lines []string) {
	r.lines = append(r.lines, lines...)
}

func (r *recorder) InputChan() <-chan string {
	return r.input
}

func (r *recorder) contains(sub string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) error {
	return nil
}

func (nopNotifier) NotifyUrgent(context.Context, string) error {
	return nil
}

func newTestApp(t *testing.T, clock *time.Time) (*cliApp, *recorder) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	eng, rules, err := build("", "", log)
	require.NoError(t, err)

	rec := &recorder{input: make(chan string)}
	return &cliApp{
		engine:  eng,
		parser:  conversation.NewKeywordParser(log),
		watcher: timer.NewWatcher(nopNotifier{}, rules, log),
		log:     log,
		ui:      rec,
		now:     func() time.Time { return *clock },
	}, rec
}

func TestAppBillingFlow(t *testing.T) {
	now := time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local)
	app, rec := newTestApp(t, &now)
	ctx := context.Background()

	for _, in := range []string{"enter", "add drink 600", "add amuse 1000"} {
		require.True(t, app.dispatch(ctx, in))
	}
	assert.Empty(t, rec.urgent)
	assert.True(t, rec.contains("Admitted at 19:00."))

	now = now.Add(45 * time.Minute)
	app.dispatch(ctx, "receipt")
	assert.True(t, rec.contains("¥2,400"))

	app.dispatch(ctx, "checkout")
	assert.True(t, rec.contains("Settled as "))
	assert.False(t, app.engine.Session().Active())

	app.dispatch(ctx, "history")
	assert.True(t, rec.contains("1 settled, ¥2,400"))
}

func TestAppRefusals(t *testing.T) {
	now := time.Date(2026, 5, 1, 22, 45, 0, 0, time.Local)
	app, rec := newTestApp(t, &now)
	ctx := context.Background()

	app.dispatch(ctx, "enter")
	require.Len(t, rec.notices, 1)
	assert.Contains(t, rec.notices[0], "23:00")
	assert.False(t, app.engine.Session().Active())

	app.dispatch(ctx, "entry 21:00")
	assert.Equal(t, "Register the entry time first.", rec.notices[len(rec.notices)-1])

	app.dispatch(ctx, "add beer 600")
	require.Len(t, rec.urgent, 1)
	assert.Contains(t, rec.urgent[0], "Unknown category")
}

func TestAppRefusalHoldsUntilStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local)
	app, _ := newTestApp(t, &now)
	ctx := context.Background()

	app.dispatch(ctx, "enter")
	app.dispatch(ctx, "entry 06:00")
	assert.True(t, app.engine.CurrentNotices().Shortage.Blocks())

	now = now.Add(2 * time.Hour)
	app.dispatch(ctx, "status")
	shortage := app.engine.CurrentNotices().Shortage
	assert.False(t, shortage.Blocks())
	assert.Contains(t, shortage.Text, "2 missing")
}

func TestAppTaxToggle(t *testing.T) {
	now := time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local)
	app, _ := newTestApp(t, &now)
	ctx := context.Background()

	app.dispatch(ctx, "tax")
	assert.Equal(t, domain.TaxExternal, app.engine.Session().TaxMode)
	app.dispatch(ctx, "tax")
	assert.Equal(t, domain.TaxInclusive, app.engine.Session().TaxMode)
	app.dispatch(ctx, "tax external")
	assert.Equal(t, domain.TaxExternal, app.engine.Session().TaxMode)
}

func TestAppQuit(t *testing.T) {
	now := time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local)
	app, _ := newTestApp(t, &now)

	assert.False(t, app.dispatch(context.Background(), "quit"))
}

func TestBuildRejectsBadTaxFlag(t *testing.T) {
	_, _, err := build("", "sometimes", logger.New(logger.LevelOff, nil))
	assert.ErrorIs(t, err, domain.ErrUnknownTax)
}
