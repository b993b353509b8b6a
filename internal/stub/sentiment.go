package stub

import (
	"regexp"
	"strings"
)

// Разметка сентимента по словарю — замена внешнего модельного API.
// Формат совпадает с настоящим: <span class="positive|negative">слово</span>,
// счётчики — по числу открывающих тегов.

var positiveWords = map[string]struct{}{
	"happy": {}, "glad": {}, "good": {}, "great": {}, "wonderful": {},
	"love": {}, "loved": {}, "joy": {}, "excited": {}, "excitement": {},
	"hopeful": {}, "calm": {}, "proud": {}, "grateful": {}, "relieved": {},
}

var negativeWords = map[string]struct{}{
	"sad": {}, "angry": {}, "anxious": {}, "anxiety": {}, "afraid": {},
	"fear": {}, "terrible": {}, "awful": {}, "tired": {}, "stressed": {},
	"worried": {}, "lonely": {}, "hate": {}, "hated": {}, "pain": {},
}

var wordRe = regexp.MustCompile(`[A-Za-z']+`)

// markSentiment оборачивает словарные слова в span-теги и считает маркеры.
func markSentiment(content string) (marked string, positive, negative int) {
	marked = wordRe.ReplaceAllStringFunc(content, func(w string) string {
		lw := strings.ToLower(w)

		if _, ok := positiveWords[lw]; ok {
			positive++
			return `<span class="positive">` + w + `</span>`
		}
		if _, ok := negativeWords[lw]; ok {
			negative++
			return `<span class="negative">` + w + `</span>`
		}

		return w
	})

	return marked, positive, negative
}
