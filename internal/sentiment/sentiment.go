// sentiment — разбор HTML-разметки сентимента, которую проставляет бэкенд.
//
// Бэкенд оборачивает эмоционально окрашенные слова в
// <span class="positive">...</span> и <span class="negative">...</span>;
// остальной текст остаётся как есть. Пакет разбирает такую разметку на
// сегменты для отрисовки в терминале и считает маркеры тем же правилом,
// что и сервер.
package sentiment

import (
	"regexp"
	"strings"
)

// Kind — окраска сегмента текста.
type Kind int

const (
	Neutral Kind = iota
	Positive
	Negative
)

// Segment — непрерывный кусок текста одной окраски.
type Segment struct {
	Text string
	Kind Kind
}

var markRe = regexp.MustCompile(`(?s)<span class="(positive|negative)">(.*?)</span>`)

// Parse разбирает размеченный текст на сегменты. Разметка, не являющаяся
// маркером сентимента, трактуется как обычный текст.
func Parse(marked string) []Segment {
	var segs []Segment

	rest := marked
	for {
		loc := markRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}

		if loc[0] > 0 {
			segs = append(segs, Segment{Text: rest[:loc[0]], Kind: Neutral})
		}

		kind := Positive
		if rest[loc[2]:loc[3]] == "negative" {
			kind = Negative
		}

		segs = append(segs, Segment{Text: rest[loc[4]:loc[5]], Kind: kind})
		rest = rest[loc[1]:]
	}

	if rest != "" {
		segs = append(segs, Segment{Text: rest, Kind: Neutral})
	}

	return segs
}

// Strip возвращает текст без разметки сентимента.
func Strip(marked string) string {
	var b strings.Builder
	for _, s := range Parse(marked) {
		b.WriteString(s.Text)
	}

	return b.String()
}

// Counts считает маркеры тем же правилом, что и сервер:
// по числу открывающих тегов каждого класса.
func Counts(marked string) (positive, negative int) {
	positive = strings.Count(marked, `<span class="positive">`)
	negative = strings.Count(marked, `<span class="negative">`)

	return positive, negative
}

// Classify определяет общий тон записи сравнением счётчиков.
func Classify(positive, negative int) string {
	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	default:
		return "neutral"
	}
}
