package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const marked = `I felt <span class="positive">excitement</span> today, ` +
	`but also a bit <span class="negative">anxious</span>.`

func TestParse(t *testing.T) {
	t.Parallel()

	segs := Parse(marked)
	require.Equal(t, []Segment{
		{Text: "I felt ", Kind: Neutral},
		{Text: "excitement", Kind: Positive},
		{Text: " today, but also a bit ", Kind: Neutral},
		{Text: "anxious", Kind: Negative},
		{Text: ".", Kind: Neutral},
	}, segs)
}

func TestParse_PlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Segment{{Text: "no markup here", Kind: Neutral}}, Parse("no markup here"))
	require.Nil(t, Parse(""))
}

// Посторонние теги не трактуются как маркеры сентимента.
func TestParse_ForeignMarkup(t *testing.T) {
	t.Parallel()

	in := `<b>bold</b> and <span class="other">plain</span>`
	require.Equal(t, []Segment{{Text: in, Kind: Neutral}}, Parse(in))
}

func TestStrip(t *testing.T) {
	t.Parallel()

	require.Equal(t, "I felt excitement today, but also a bit anxious.", Strip(marked))
	require.Equal(t, "plain", Strip("plain"))
}

func TestCounts(t *testing.T) {
	t.Parallel()

	pos, neg := Counts(marked)
	require.Equal(t, 1, pos)
	require.Equal(t, 1, neg)

	pos, neg = Counts("nothing marked")
	require.Zero(t, pos)
	require.Zero(t, neg)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	require.Equal(t, "positive", Classify(3, 1))
	require.Equal(t, "negative", Classify(1, 3))
	require.Equal(t, "neutral", Classify(2, 2))
	require.Equal(t, "neutral", Classify(0, 0))
}
