package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"thought-diary-cli/internal/models"
)

func TestPreview(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", preview("short", 10))
	require.Equal(t, "multi line", preview("multi\nline", 20))
	require.Equal(t, "0123456…", preview("0123456789", 8))

	// Обрезка по рунам, не по байтам.
	require.Equal(t, "привет м…", preview("привет мир и всем", 9))
}

func TestRenderMarked_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := renderMarked(`so <span class="positive">glad</span> today`)
	require.Equal(t, "so glad today", got)
}

func TestRenderMarked_Color(t *testing.T) {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		t.Skip("NO_COLOR set in environment")
	}

	got := renderMarked(`so <span class="positive">glad</span> and <span class="negative">tired</span>`)
	require.Contains(t, got, ansiGreen+"glad"+ansiReset)
	require.Contains(t, got, ansiRed+"tired"+ansiReset)
}

func TestRenderPager_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := renderPager(models.Pagination{Page: 5, PerPage: 10, Total: 95, Pages: 10})
	require.Equal(t, "page 5 of 10 (95 total)  « 1 … 3 4 [5] 6 7 … 10 »", got)

	got = renderPager(models.Pagination{Page: 1, PerPage: 10, Total: 8, Pages: 1})
	require.Equal(t, "page 1 of 1 (8 total)  [1]", got)
}
