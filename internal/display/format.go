package display

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/notice"
)

var yenPrinter = message.NewPrinter(language.Japanese)

// Yen formats an amount with digit grouping, e.g. "¥12,400".
func Yen(amount int) string {
	return yenPrinter.Sprintf("¥%d", amount)
}

// taxLabel is the short suffix shown after a total.
func taxLabel(m domain.TaxMode) string {
	if m == domain.TaxExternal {
		return "+tax"
	}
	return "tax incl."
}

// FormatStay renders whole minutes as "1h 05m" or "45m".
func FormatStay(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// FormatReceipt lays out a receipt as aligned plain-text lines.
func FormatReceipt(r *domain.Receipt) []string {
	out := make([]string, 0, len(r.Lines)+6)
	out = append(out, fmt.Sprintf("Stay %s → %s  (%s)",
		r.EntryTime.Format("15:04"), r.End.Format("15:04"), FormatStay(r.StayMinutes)))

	for _, l := range r.Lines {
		label := l.Label
		if l.Count > 1 || l.Kind == domain.LineItem {
			label = fmt.Sprintf("%s %s ×%d", l.Label, Yen(l.Unit), l.Count)
		}
		out = append(out, receiptRow(label, Yen(l.Amount)))
	}

	out = append(out, strings.Repeat("─", receiptWidth))
	out = append(out, receiptRow("Subtotal", Yen(r.Subtotal)))
	if r.TaxMode == domain.TaxExternal {
		out = append(out, receiptRow("Tax", Yen(r.Tax)))
	}
	out = append(out, receiptRow("Total ("+r.TaxMode.String()+")", Yen(r.Total)))
	return out
}

const receiptWidth = 40

func receiptRow(label, amount string) string {
	pad := receiptWidth - len([]rune(label)) - len([]rune(amount))
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + amount
}

// FormatSettled renders one ledger entry on a single line.
func FormatSettled(s *domain.SettledReceipt) string {
	id := s.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s  %s  %s → %s  %s  %s",
		id, s.SettledAt.Format("01-02 15:04"),
		s.EntryTime.Format("15:04"), s.End.Format("15:04"),
		FormatStay(s.StayMinutes), Yen(s.Total))
}

// FormatMenu renders one menu section as "🍹 Drink: ¥600 ¥800 (2) ...",
// with the selected count after each price that has one.
func FormatMenu(sec domain.MenuSection, counts map[int]int) string {
	parts := make([]string, 0, len(sec.Prices))
	for _, p := range sec.Prices {
		s := Yen(p)
		if n := counts[p]; n > 0 {
			s += fmt.Sprintf(" (%d)", n)
		}
		parts = append(parts, s)
	}
	head := sec.Label
	if sec.Icon != "" {
		head = sec.Icon + " " + head
	}
	return fmt.Sprintf("%s [%s]: %s", head, sec.Category, strings.Join(parts, "  "))
}

// renderNotice colours a notice by level.
func renderNotice(n notice.Notice) string {
	switch n.Level {
	case notice.LevelBlocking:
		return blockingStyle.Render(n.Text)
	case notice.LevelAdvisory:
		return advisoryStyle.Render(n.Text)
	default:
		return ""
	}
}
