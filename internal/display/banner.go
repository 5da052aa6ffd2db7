package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art and a tagline horizontally centred
// for the current terminal width.
func RenderBanner(tagline string) string {
	return centre(bannerRaw, tagline, termWidth())
}

func centre(art, tagline string, width int) string {
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")

	// The art is padded as one block so its columns stay aligned.
	maxW := 0
	for _, l := range lines {
		maxW = max(maxW, lipgloss.Width(l))
	}

	var b strings.Builder
	for _, l := range lines {
		writePadded(&b, l, width, maxW)
	}
	if tagline != "" {
		b.WriteByte('\n')
		writePadded(&b, tagline, width, lipgloss.Width(tagline))
	}
	return b.String()
}

func writePadded(b *strings.Builder, line string, width, blockW int) {
	if width > blockW {
		b.WriteString(strings.Repeat(" ", (width-blockW)/2))
	}
	b.WriteString(BannerStyle.Render(line))
	b.WriteByte('\n')
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
