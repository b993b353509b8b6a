package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"thought-diary-cli/internal/models"
)

const (
	goodEmail    = "diarist@example.com"
	goodPassword = "Val1d!password"
)

// doJSON выполняет запрос к стабу и декодирует тело ответа в out (если не nil).
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}

	return resp.StatusCode
}

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

// registerAndLogin возвращает пару токенов свежего пользователя.
func registerAndLogin(t *testing.T, srv *httptest.Server, email string) (access, refresh string) {
	t.Helper()

	status := doJSON(t, srv, http.MethodPost, "/auth/register", "", credentials(email, goodPassword), nil)
	require.Equal(t, http.StatusCreated, status)

	var tokens map[string]string
	status = doJSON(t, srv, http.MethodPost, "/auth/login", "", credentials(email, goodPassword), &tokens)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, tokens["access_token"])
	require.NotEmpty(t, tokens["refresh_token"])
	require.Equal(t, "Bearer", tokens["token_type"])

	return tokens["access_token"], tokens["refresh_token"]
}

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(New(Config{}).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)

	cases := []struct {
		name     string
		email    string
		password string
		wantText string
	}{
		{name: "bad_email", email: "not-an-email", password: goodPassword, wantText: "Invalid email format"},
		{name: "short_password", email: goodEmail, password: "S1!a", wantText: "at least 8 characters"},
		{name: "no_uppercase", email: goodEmail, password: "weak1!pass", wantText: "uppercase letter"},
		{name: "no_lowercase", email: goodEmail, password: "WEAK1!PASS", wantText: "lowercase letter"},
		{name: "no_digit", email: goodEmail, password: "Weakest!pass", wantText: "digit"},
		{name: "no_special", email: goodEmail, password: "Weak1pass", wantText: "special character"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var errBody map[string]string
			status := doJSON(t, srv, http.MethodPost, "/auth/register", "",
				credentials(tc.email, tc.password), &errBody)

			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, "VALIDATION_ERROR", errBody["code"])
			require.Contains(t, errBody["error"], tc.wantText)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)

	status := doJSON(t, srv, http.MethodPost, "/auth/register", "",
		credentials(goodEmail, goodPassword), nil)
	require.Equal(t, http.StatusCreated, status)

	var errBody map[string]string
	// E-mail нормализуется: регистр и пробелы не делают адрес другим.
	status = doJSON(t, srv, http.MethodPost, "/auth/register", "",
		credentials("  Diarist@Example.COM ", goodPassword), &errBody)

	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "EMAIL_EXISTS", errBody["code"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	registerAndLogin(t, srv, goodEmail)

	var errBody map[string]string
	status := doJSON(t, srv, http.MethodPost, "/auth/login", "",
		credentials(goodEmail, "Wr0ng!password"), &errBody)

	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "INVALID_CREDENTIALS", errBody["code"])

	status = doJSON(t, srv, http.MethodPost, "/auth/login", "",
		credentials("ghost@example.com", goodPassword), &errBody)

	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "INVALID_CREDENTIALS", errBody["code"])
}

func TestProtected_RequiresToken(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)

	var errBody map[string]string
	status := doJSON(t, srv, http.MethodGet, "/diaries", "", nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "TOKEN_MISSING", errBody["code"])

	status = doJSON(t, srv, http.MethodGet, "/auth/me", "garbage-token", nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "TOKEN_INVALID", errBody["code"])
}

func TestRefresh_RotatesAccessOnly(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	access, refresh := registerAndLogin(t, srv, goodEmail)

	var out map[string]string
	status := doJSON(t, srv, http.MethodPost, "/auth/refresh", refresh, nil, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out["access_token"])
	require.NotEqual(t, access, out["access_token"])
	require.Empty(t, out["refresh_token"], "refresh-токен не перевыпускается")

	// Старый refresh-токен остаётся рабочим.
	status = doJSON(t, srv, http.MethodPost, "/auth/refresh", refresh, nil, &out)
	require.Equal(t, http.StatusOK, status)

	var errBody map[string]string
	status = doJSON(t, srv, http.MethodPost, "/auth/refresh", "bogus", nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "TOKEN_INVALID", errBody["code"])
}

func TestLogout_RevokesAccessToken(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	access, _ := registerAndLogin(t, srv, goodEmail)

	status := doJSON(t, srv, http.MethodPost, "/auth/logout", access, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var errBody map[string]string
	status = doJSON(t, srv, http.MethodGet, "/auth/me", access, nil, &errBody)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "TOKEN_INVALID", errBody["code"])
}

func TestDiaries_PaginationAndOrder(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	access, _ := registerAndLogin(t, srv, goodEmail)

	for i := 1; i <= 25; i++ {
		status := doJSON(t, srv, http.MethodPost, "/diaries", access,
			map[string]string{"content": fmt.Sprintf("entry %d", i)}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var page models.DiaryPage
	status := doJSON(t, srv, http.MethodGet, "/diaries?page=2&per_page=10", access, nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, page.Items, 10)
	require.Equal(t, 25, page.Pagination.Total)
	require.Equal(t, 3, page.Pagination.Pages)

	// От новых к старым: вторая страница начинается с 15-й записи.
	require.Equal(t, "entry 15", page.Items[0].Content)
	require.Equal(t, "entry 6", page.Items[9].Content)

	// per_page прижимается к максимуму 100.
	status = doJSON(t, srv, http.MethodGet, "/diaries?per_page=1000", access, nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 100, page.Pagination.PerPage)
	require.Len(t, page.Items, 25)

	// Страница за пределами диапазона — пустой список, не ошибка.
	status = doJSON(t, srv, http.MethodGet, "/diaries?page=99", access, nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, page.Items)
	require.NotNil(t, page.Items)
}

func TestDiaries_ContentValidation(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	access, _ := registerAndLogin(t, srv, goodEmail)

	var errBody map[string]string
	status := doJSON(t, srv, http.MethodPost, "/diaries", access,
		map[string]string{"content": "   "}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", errBody["code"])

	long := bytes.Repeat([]byte("a"), maxContentLen+1)
	status = doJSON(t, srv, http.MethodPost, "/diaries", access,
		map[string]string{"content": string(long)}, &errBody)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", errBody["code"])
}

// Чужая запись — 403, несуществующая — 404.
func TestDiaries_Isolation(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	alice, _ := registerAndLogin(t, srv, "alice@example.com")
	bob, _ := registerAndLogin(t, srv, "bob@example.com")

	var created models.Diary
	status := doJSON(t, srv, http.MethodPost, "/diaries", alice,
		map[string]string{"content": "private thoughts"}, &created)
	require.Equal(t, http.StatusCreated, status)

	var errBody map[string]string
	path := fmt.Sprintf("/diaries/%d", created.ID)

	status = doJSON(t, srv, http.MethodGet, path, bob, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "FORBIDDEN", errBody["code"])

	status = doJSON(t, srv, http.MethodDelete, path, bob, nil, &errBody)
	require.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, srv, http.MethodGet, "/diaries/424242", alice, nil, &errBody)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "DIARY_NOT_FOUND", errBody["code"])

	// Список Боба запись Алисы не содержит.
	var page models.DiaryPage
	status = doJSON(t, srv, http.MethodGet, "/diaries", bob, nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, page.Items)
}

func TestDiaries_SentimentAndStats(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)
	access, _ := registerAndLogin(t, srv, goodEmail)

	var d models.Diary
	status := doJSON(t, srv, http.MethodPost, "/diaries", access,
		map[string]string{"content": "I am happy but tired"}, &d)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, `I am <span class="positive">happy</span> but <span class="negative">tired</span>`,
		d.AnalyzedContent)
	require.Equal(t, 1, d.PositiveCount)
	require.Equal(t, 1, d.NegativeCount)

	// Обновление пересчитывает разметку.
	var updated models.Diary
	status = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/diaries/%d", d.ID), access,
		map[string]string{"content": "wonderful great day"}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 2, updated.PositiveCount)
	require.Zero(t, updated.NegativeCount)

	status = doJSON(t, srv, http.MethodPost, "/diaries", access,
		map[string]string{"content": "plain factual note"}, nil)
	require.Equal(t, http.StatusCreated, status)

	var stats models.Stats
	status = doJSON(t, srv, http.MethodGet, "/diaries/stats", access, nil, &stats)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, models.Stats{
		TotalEntries:    2,
		PositiveEntries: 1,
		NeutralEntries:  1,
	}, stats)
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()

	srv := newStubServer(t)

	var h models.Health
	status := doJSON(t, srv, http.MethodGet, "/health", "", nil, &h)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "healthy", h.Status)
	require.NotEmpty(t, h.Timestamp)

	var v models.Version
	status = doJSON(t, srv, http.MethodGet, "/version", "", nil, &v)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, v.Version)
}
