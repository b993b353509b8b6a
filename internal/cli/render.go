package cli

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"thought-diary-cli/internal/models"
	"thought-diary-cli/internal/pagination"
	"thought-diary-cli/internal/sentiment"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
)

// colorEnabled учитывает соглашение NO_COLOR.
func colorEnabled() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return !noColor
}

// renderMarked красит сегменты сентимента в зелёный/красный.
func renderMarked(marked string) string {
	segs := sentiment.Parse(marked)

	if !colorEnabled() {
		return sentiment.Strip(marked)
	}

	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case sentiment.Positive:
			b.WriteString(ansiGreen + s.Text + ansiReset)
		case sentiment.Negative:
			b.WriteString(ansiRed + s.Text + ansiReset)
		default:
			b.WriteString(s.Text)
		}
	}

	return b.String()
}

// renderPager рисует окно пагинации: « 1 … 4 [5] 6 … 9 ».
func renderPager(p models.Pagination) string {
	win := pagination.Build(p.Page, p.Pages, pagination.DefaultDelta)

	var parts []string

	if win.HasPrev {
		parts = append(parts, "«")
	}

	for _, n := range win.Pages {
		switch {
		case n == pagination.Ellipsis:
			parts = append(parts, "…")
		case n == p.Page && colorEnabled():
			parts = append(parts, fmt.Sprintf("%s[%d]%s", ansiBold, n, ansiReset))
		case n == p.Page:
			parts = append(parts, fmt.Sprintf("[%d]", n))
		default:
			parts = append(parts, fmt.Sprintf("%d", n))
		}
	}

	if win.HasNext {
		parts = append(parts, "»")
	}

	return fmt.Sprintf("page %d of %d (%d total)  %s",
		p.Page, p.Pages, p.Total, strings.Join(parts, " "))
}

// preview обрезает текст до limit рун для списка.
func preview(text string, limit int) string {
	text = strings.ReplaceAll(text, "\n", " ")

	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}
