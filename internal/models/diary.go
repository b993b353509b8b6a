package models

import "time"

// Diary — запись дневника мыслей.
//
// Content — исходный текст пользователя; AnalyzedContent — тот же текст
// с HTML-разметкой сентимента (<span class="positive|negative">...),
// которую проставляет бэкенд. Счётчики соответствуют числу маркеров
// в AnalyzedContent.
type Diary struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Content         string    `json:"content"`
	AnalyzedContent string    `json:"analyzed_content"`
	PositiveCount   int       `json:"positive_count"`
	NegativeCount   int       `json:"negative_count"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

// Pagination — метаданные страницы списка записей.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// DiaryPage — ответ GET /diaries: элементы страницы плюс метаданные.
type DiaryPage struct {
	Items      []Diary    `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Stats — агрегаты по дневнику текущего пользователя (GET /diaries/stats).
// Запись считается позитивной/негативной по сравнению счётчиков маркеров.
type Stats struct {
	TotalEntries    int `json:"total_entries"`
	PositiveEntries int `json:"positive_entries"`
	NegativeEntries int `json:"negative_entries"`
	NeutralEntries  int `json:"neutral_entries"`
}
