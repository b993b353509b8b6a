// Координатор обновления access-токена.
//
// Состояния: Idle и Refreshing. Первый запрос, получивший 401, становится
// лидером и выполняет POST /auth/refresh; все 401, случившиеся пока refresh
// в полёте, не запускают собственный — их продолжения встают в очередь и
// получают общий исход в порядке постановки. Инвариант: в полёте не бывает
// больше одного refresh-вызова.
//
// Исход:
//   - успех: новый access-токен сохранён (refresh-токен не меняется),
//     все ожидающие повторяют свой запрос с одним и тем же новым токеном;
//   - неудача (refresh-токена нет либо вызов не удался): токены стираются,
//     все ожидающие получают ошибку, сессия завершается.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"thought-diary-cli/internal/models"
	"thought-diary-cli/internal/pkg/log"
)

// refreshResult — общий исход одного refresh-вызова.
type refreshResult struct {
	access string
	err    error
}

// refreshGate — явный маленький объект состояния вместо глобального флага:
// признак "refresh в полёте" плюс FIFO-очередь ожидающих.
type refreshGate struct {
	mu      sync.Mutex
	active  bool
	waiters []chan refreshResult
}

// begin возвращает (true, nil), если вызывающий стал лидером, либо
// (false, ch) — канал, по которому придёт исход лидерского refresh-а.
func (g *refreshGate) begin() (bool, <-chan refreshResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		g.active = true
		return true, nil
	}

	ch := make(chan refreshResult, 1)
	g.waiters = append(g.waiters, ch)

	return false, ch
}

// settle завершает refresh: очередь осушается в порядке постановки,
// состояние возвращается в Idle.
func (g *refreshGate) settle(res refreshResult) {
	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.active = false
	g.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}

// refreshAccess выдаёт свежий access-токен: лидер выполняет реальный
// refresh-вызов, остальные блокируются до его исхода.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	leader, wait := c.gate.begin()
	if !leader {
		res := <-wait
		return res.access, res.err
	}

	res := c.doRefresh(ctx)
	c.gate.settle(res)

	return res.access, res.err
}

// doRefresh — собственно обмен refresh-токена на новый access-токен.
// Любая неудача терминальна для сессии: токены стираются.
func (c *Client) doRefresh(ctx context.Context) refreshResult {
	const op = "client.refresh.doRefresh"

	lg := log.From(ctx)

	pair, err := c.tokens.Load()
	if err != nil || pair.RefreshToken == "" {
		lg.Warn("refresh_no_token", slog.String("op", op))
		c.clearSession()

		return refreshResult{err: &APIError{
			Code:    CodeAuthError,
			Message: "no refresh token stored",
		}}
	}

	status, body, err := c.postRefresh(ctx, pair.RefreshToken)
	if err != nil {
		lg.Warn("refresh_transport_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		c.clearSession()

		return refreshResult{err: normalizeTransport(err)}
	}

	if status >= 400 {
		lg.Warn("refresh_rejected",
			slog.String("op", op),
			slog.Int("status", status),
		)
		c.clearSession()

		norm := normalizeResponse(status, body)
		norm.Code = CodeAuthError

		return refreshResult{err: norm}
	}

	var out models.RefreshResponse
	if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
		c.clearSession()

		return refreshResult{err: &APIError{
			Code:    CodeAuthError,
			Message: "malformed refresh response",
			Status:  status,
		}}
	}

	// Ротируется только access-часть; refresh-токен остаётся прежним.
	if err := c.tokens.SetAccess(out.AccessToken); err != nil {
		return refreshResult{err: fmt.Errorf("%s: save access token: %w", op, err)}
	}

	lg.Debug("refresh_ok", slog.String("op", op))

	return refreshResult{access: out.AccessToken}
}

// postRefresh выполняет POST /auth/refresh. Вызов собирается вручную:
// он единственный авторизуется refresh-токеном, а не access-токеном,
// и не должен проходить через общий конвейер (иначе его собственный 401
// рекурсивно запускал бы refresh).
func (c *Client) postRefresh(ctx context.Context, refreshToken string) (int, []byte, error) {
	u := *c.baseURL
	u.Path = u.Path + "/auth/refresh"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}

// HasSession сообщает, сохранена ли у клиента пара токенов.
func (c *Client) HasSession() bool {
	pair, err := c.tokens.Load()
	if err != nil {
		return false
	}

	return pair.AccessToken != "" || pair.RefreshToken != ""
}
