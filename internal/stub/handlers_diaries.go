package stub

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"thought-diary-cli/internal/models"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type diaryRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListDiaries(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	s.mu.Lock()
	// Новые записи добавляются в конец; отдаём от новых к старым.
	var mine []models.Diary
	for i := len(s.diaries) - 1; i >= 0; i-- {
		if s.diaries[i].UserID == u.id {
			mine = append(mine, *s.diaries[i])
		}
	}
	s.mu.Unlock()

	total := len(mine)
	pages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := mine[start:end]
	if items == nil {
		items = []models.Diary{}
	}

	writeJSON(w, http.StatusOK, models.DiaryPage{
		Items: items,
		Pagination: models.Pagination{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pages,
		},
	})
}

func (s *Server) handleCreateDiary(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	var in diaryRequest
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR")
		return
	}

	if !validContent(in.Content) {
		writeErr(w, http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR")
		return
	}

	marked, pos, neg := markSentiment(in.Content)
	now := time.Now().UTC()

	s.mu.Lock()
	d := &models.Diary{
		ID:              s.nextDiary,
		UserID:          u.id,
		Content:         in.Content,
		AnalyzedContent: marked,
		PositiveCount:   pos,
		NegativeCount:   neg,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.nextDiary++
	s.diaries = append(s.diaries, d)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, d)
}

// diaryByID возвращает запись и HTTP-ошибку доступа, если запись чужая
// или отсутствует. Вызывается под s.mu.
func (s *Server) diaryByID(id, userID int64) (*models.Diary, int, string, string) {
	for _, d := range s.diaries {
		if d.ID != id {
			continue
		}

		if d.UserID != userID {
			return nil, http.StatusForbidden,
				"You do not have permission to access this diary entry", "FORBIDDEN"
		}

		return d, 0, "", ""
	}

	return nil, http.StatusNotFound, "Diary entry not found", "DIARY_NOT_FOUND"
}

func diaryID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func (s *Server) handleGetDiary(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	s.mu.Lock()
	d, status, text, code := s.diaryByID(diaryID(r), u.id)
	var out models.Diary
	if d != nil {
		out = *d
	}
	s.mu.Unlock()

	if d == nil {
		writeErr(w, status, text, code)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateDiary(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	var in diaryRequest
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR")
		return
	}

	s.mu.Lock()
	d, status, text, code := s.diaryByID(diaryID(r), u.id)
	if d == nil {
		s.mu.Unlock()
		writeErr(w, status, text, code)
		return
	}

	if !validContent(in.Content) {
		s.mu.Unlock()
		writeErr(w, http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR")
		return
	}

	marked, pos, neg := markSentiment(in.Content)
	d.Content = in.Content
	d.AnalyzedContent = marked
	d.PositiveCount = pos
	d.NegativeCount = neg
	d.UpdatedAt = time.Now().UTC()
	out := *d
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteDiary(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	s.mu.Lock()
	d, status, text, code := s.diaryByID(diaryID(r), u.id)
	if d == nil {
		s.mu.Unlock()
		writeErr(w, status, text, code)
		return
	}

	for i, cur := range s.diaries {
		if cur.ID == d.ID {
			s.diaries = append(s.diaries[:i], s.diaries[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Diary entry deleted successfully",
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	stats := models.Stats{}

	s.mu.Lock()
	for _, d := range s.diaries {
		if d.UserID != u.id {
			continue
		}

		stats.TotalEntries++
		switch {
		case d.PositiveCount > d.NegativeCount:
			stats.PositiveEntries++
		case d.NegativeCount > d.PositiveCount:
			stats.NegativeEntries++
		default:
			stats.NeutralEntries++
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}
