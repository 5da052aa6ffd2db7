package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/engine"
	"github.com/hammamikhairi/staytab/internal/notice"
)

func TestYen(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "¥0"},
		{800, "¥800"},
		{2400, "¥2,400"},
		{1234567, "¥1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Yen(tt.amount))
	}
}

func TestFormatStay(t *testing.T) {
	assert.Equal(t, "0m", FormatStay(0))
	assert.Equal(t, "45m", FormatStay(45))
	assert.Equal(t, "1h 00m", FormatStay(60))
	assert.Equal(t, "2h 05m", FormatStay(125))
}

func TestFormatReceipt(t *testing.T) {
	entry := time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local)
	r := &domain.Receipt{
		EntryTime:   entry,
		End:         entry.Add(91 * time.Minute),
		StayMinutes: 91,
		Lines: []domain.ReceiptLine{
			{Kind: domain.LineBase, Label: "Entry charge (60min)", Count: 1, Unit: 800, Amount: 800},
			{Kind: domain.LineExtension, Label: "Extension (30min)", Count: 2, Unit: 400, Amount: 800},
			{Kind: domain.LineItem, Category: domain.CategoryDrink, Label: "Drink", Count: 1, Unit: 600, Amount: 600},
			{Kind: domain.LineForced, Label: "Required amuse top-up", Count: 1, Unit: 1000, Amount: 1000},
		},
		Subtotal: 3200,
		Tax:      320,
		Total:    3520,
		TaxMode:  domain.TaxExternal,
	}

	lines := FormatReceipt(r)
	require.NotEmpty(t, lines)
	assert.Equal(t, "Stay 19:00 → 20:31  (1h 31m)", lines[0])

	body := strings.Join(lines, "\n")
	assert.Contains(t, body, "Extension (30min) ¥400 ×2")
	assert.Contains(t, body, "Drink ¥600 ×1")
	assert.Contains(t, body, "Required amuse top-up")
	assert.Contains(t, body, "¥320")
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "¥3,520"))

	for _, l := range lines[1:] {
		if strings.HasPrefix(l, "─") {
			continue
		}
		assert.Equal(t, receiptWidth, len([]rune(l)), "row %q is aligned", l)
	}
}

func TestFormatReceiptInclusiveHasNoTaxRow(t *testing.T) {
	r := &domain.Receipt{Subtotal: 800, Total: 800, TaxMode: domain.TaxInclusive}
	for _, l := range FormatReceipt(r) {
		assert.False(t, strings.HasPrefix(l, "Tax "), "unexpected tax row %q", l)
	}
}

func TestFormatMenu(t *testing.T) {
	sec := domain.MenuSection{
		Category: domain.CategoryDrink,
		Label:    "Drink",
		Icon:     "🍹",
		Prices:   []int{600, 800, 1000},
	}
	got := FormatMenu(sec, map[int]int{800: 2})
	assert.Equal(t, "🍹 Drink [drink]: ¥600  ¥800 (2)  ¥1,000", got)
}

func TestFormatSettled(t *testing.T) {
	at := time.Date(2026, 5, 1, 20, 0, 0, 0, time.Local)
	s := &domain.SettledReceipt{
		ID:        "0123456789abcdef",
		SettledAt: at,
		Receipt: domain.Receipt{
			EntryTime:   at.Add(-45 * time.Minute),
			End:         at,
			StayMinutes: 45,
			Total:       2400,
		},
	}
	assert.Equal(t, "01234567  05-01 20:00  19:15 → 20:00  45m  ¥2,400", FormatSettled(s))
}

func TestStatusLine(t *testing.T) {
	idle := statusLine(engine.Snapshot{})
	assert.Contains(t, idle, "enter")

	entry := time.Date(2026, 5, 1, 19, 0, 0, 0, time.Local)
	s := engine.Snapshot{
		Session: domain.Session{EntryTime: entry, PlannedExit: entry.Add(2 * time.Hour)},
		Result:  domain.BillingResult{Active: true, StayMinutes: 120, ExtensionCount: 2, Total: 1600},
		Notices: notice.Notices{Shortage: notice.Advisory(notice.LineRequiredMissing())},
	}
	line := statusLine(s)
	for _, want := range []string{"19:00", "21:00", "2h 00m", "¥1,600"} {
		assert.Contains(t, line, want)
	}
	assert.Contains(t, noticeLine(s), notice.LineRequiredMissing())
	assert.Empty(t, noticeLine(engine.Snapshot{}))
}

func TestCentreBanner(t *testing.T) {
	out := centre("ab\nabcd\n", "hi", 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "   ab"))
	assert.True(t, strings.HasPrefix(lines[1], "   abcd"))
	assert.Equal(t, "", strings.TrimSpace(lines[2]))
	assert.True(t, strings.HasPrefix(lines[3], "    hi"))
}
