package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"thought-diary-cli/internal/models"
)

type diaryRequest struct {
	Content string `json:"content"`
}

// ListDiaries возвращает страницу записей текущего пользователя,
// отсортированных от новых к старым. page и perPage <= 0 не передаются —
// сервер подставит свои значения по умолчанию (1 и 10, per_page не более 100).
func (c *Client) ListDiaries(ctx context.Context, page, perPage int) (*models.DiaryPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}

	var out models.DiaryPage
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/diaries",
		query:  q,
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}

// CreateDiary создаёт запись; разметку сентимента и счётчики проставляет бэкенд.
func (c *Client) CreateDiary(ctx context.Context, content string) (*models.Diary, error) {
	var out models.Diary
	if err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/diaries",
		body:   diaryRequest{Content: content},
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetDiary возвращает одну запись по id.
func (c *Client) GetDiary(ctx context.Context, id int64) (*models.Diary, error) {
	var out models.Diary
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/diaries/%d", id),
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateDiary заменяет текст записи; бэкенд пересчитывает сентимент.
func (c *Client) UpdateDiary(ctx context.Context, id int64, content string) (*models.Diary, error) {
	var out models.Diary
	if err := c.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/diaries/%d", id),
		body:   diaryRequest{Content: content},
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteDiary удаляет запись.
func (c *Client) DeleteDiary(ctx context.Context, id int64) error {
	var out models.MessageResponse

	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/diaries/%d", id),
		out:    &out,
	})
}

// Stats возвращает агрегаты по дневнику текущего пользователя.
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/diaries/stats",
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}
