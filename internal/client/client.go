// client — авторизованный HTTP-клиент Thought Diary API.
//
// Обязанности:
//   - подстановка access-токена как bearer-учётных данных во все запросы,
//     кроме фиксированного списка публичных эндпойнтов;
//   - координация единственного refresh-вызова, разделяемого всеми
//     одновременно упавшими с 401 запросами (см. refresh.go);
//   - нормализация ошибок транспорта в единый формат (см. errors.go).
//
// Экземпляр Client безопасен для конкурентного использования из разных
// горутин при условии, что переданное хранилище токенов потокобезопасно.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"thought-diary-cli/internal/pkg/log"
	"thought-diary-cli/internal/tokenstore"
)

const defaultTimeout = 30 * time.Second

// publicPaths — эндпойнты, на которые bearer-токен не подставляется.
var publicPaths = map[string]struct{}{
	"/auth/register": {},
	"/auth/login":    {},
	"/health":        {},
	"/version":       {},
	"/docs":          {},
}

// authPaths — эндпойнты, 401 от которых никогда не запускает refresh:
// валидной сессии за таким 401 заведомо нет.
var authPaths = map[string]struct{}{
	"/auth/register": {},
	"/auth/login":    {},
}

// Options — параметры сборки клиента.
type Options struct {
	// BaseURL — корень API, например "http://localhost:5000".
	BaseURL string
	// Tokens — хранилище пары токенов (обязательно).
	Tokens tokenstore.Store
	// Timeout — общий таймаут одного запроса; по умолчанию 30s.
	Timeout time.Duration
	// Logger — базовый логгер; по умолчанию slog.Default().
	Logger *slog.Logger
	// HTTPClient позволяет подменить транспорт (тесты). Timeout игнорируется,
	// если клиент передан явно.
	HTTPClient *http.Client
	// OnSessionExpired вызывается один раз на каждый неудавшийся refresh —
	// аналог редиректа на страницу логина. Может быть nil.
	OnSessionExpired func()
}

// Client — авторизованный клиент REST API.
type Client struct {
	baseURL          *url.URL
	httpc            *http.Client
	tokens           tokenstore.Store
	lg               *slog.Logger
	gate             refreshGate
	onSessionExpired func()
}

// New создаёт клиент.
func New(opts Options) (*Client, error) {
	const op = "client.New"

	if opts.Tokens == nil {
		return nil, fmt.Errorf("%s: nil token store", op)
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: base url must be absolute, got %q", op, opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}

	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}

	return &Client{
		baseURL:          base,
		httpc:            httpc,
		tokens:           opts.Tokens,
		lg:               lg,
		onSessionExpired: opts.OnSessionExpired,
	}, nil
}

// call — один типизированный вызов API.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

// do выполняет вызов: подставляет bearer, при 401 один раз пытается
// обновить access-токен и повторить запрос.
func (c *Client) do(ctx context.Context, cl call) error {
	rid := uuid.NewString()
	ctx = log.With(ctx, slog.String("request_id", rid))

	return c.send(ctx, cl, rid, false)
}

// send — одна попытка запроса. retried выполняет роль пометки "_retry":
// запрос никогда не повторяется больше одного раза, что исключает
// бесконечный цикл refresh-ей.
func (c *Client) send(ctx context.Context, cl call, rid string, retried bool) error {
	const op = "client.send"

	lg := log.From(ctx)

	start := time.Now()
	status, body, err := c.roundTrip(ctx, cl, rid)
	if err != nil {
		norm := normalizeTransport(err)
		lg.Warn("api_transport_error",
			slog.String("op", op),
			slog.String("method", cl.method),
			slog.String("path", cl.path),
			slog.String("err", err.Error()),
		)
		return norm
	}

	lg.Debug("api_response",
		slog.String("op", op),
		slog.String("method", cl.method),
		slog.String("path", cl.path),
		slog.Int("status", status),
		slog.Duration("dur", time.Since(start)),
	)

	if status == http.StatusUnauthorized && !retried {
		if _, isAuth := authPaths[cl.path]; !isAuth {
			if _, rerr := c.refreshAccess(ctx); rerr != nil {
				return rerr
			}

			// Повтор с новым токеном из хранилища; вторая 401 уже не
			// запустит refresh.
			return c.send(ctx, cl, rid, true)
		}
	}

	if status >= 400 {
		return normalizeResponse(status, body)
	}

	if cl.out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, cl.out); err != nil {
			return &APIError{
				Code:    CodeUnknownError,
				Message: fmt.Sprintf("malformed response body: %v", err),
				Status:  status,
			}
		}
	}

	return nil
}

// roundTrip собирает и выполняет HTTP-запрос, возвращая статус и тело.
// Ошибка означает, что ответа не было вовсе.
func (c *Client) roundTrip(ctx context.Context, cl call, rid string) (int, []byte, error) {
	const op = "client.roundTrip"

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + cl.path
	if cl.query != nil {
		u.RawQuery = cl.query.Encode()
	}

	var reqBody io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return 0, nil, fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", rid)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Публичные эндпойнты ходят без учётных данных; для остальных —
	// bearer, если access-токен сохранён. Без токена запрос уходит
	// неавторизованным и, скорее всего, получит 401 от сервера.
	if _, public := publicPaths[cl.path]; !public {
		if pair, err := c.tokens.Load(); err == nil && pair.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		}
	}

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

// Tokens возвращает хранилище токенов клиента.
func (c *Client) Tokens() tokenstore.Store { return c.tokens }

// clearSession удаляет пару токенов и сигнализирует о конце сессии.
// Единственный фатальный, невосстановимый путь в клиенте.
func (c *Client) clearSession() {
	if err := c.tokens.Clear(); err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		c.lg.Warn("token_clear_failed", slog.String("err", err.Error()))
	}

	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
