package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"thought-diary-cli/internal/models"
	"thought-diary-cli/internal/pkg/log"
	"thought-diary-cli/internal/pkg/redact"
	"thought-diary-cli/internal/tokenstore"
)

// Register создаёт нового пользователя. Публичный эндпойнт: 401 отсюда
// никогда не запускает refresh.
func (c *Client) Register(ctx context.Context, email, password string) (*models.User, error) {
	const op = "client.auth.Register"

	// Бэкенд отвечает либо объектом пользователя, либо {message, user}.
	var out struct {
		Message   string       `json:"message"`
		User      *models.User `json:"user"`
		ID        int64        `json:"id"`
		Email     string       `json:"email"`
		CreatedAt time.Time    `json:"created_at"`
		UpdatedAt time.Time    `json:"updated_at"`
	}

	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   models.RegisterRequest{Email: email, Password: password},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}

	user := out.User
	if user == nil {
		user = &models.User{
			ID:        out.ID,
			Email:     out.Email,
			CreatedAt: out.CreatedAt,
			UpdatedAt: out.UpdatedAt,
		}
	}

	log.From(ctx).Info("register_ok",
		slog.String("op", op),
		slog.String("email", redact.Email(email)),
	)

	return user, nil
}

// Login аутентифицирует пользователя и сохраняет полученную пару токенов.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "client.auth.Login"

	var out models.LoginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   models.LoginRequest{Email: email, Password: password},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}

	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, &APIError{
			Code:    CodeUnknownError,
			Message: "login response missing tokens",
		}
	}

	if err := c.tokens.Save(tokenstore.Pair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	}); err != nil {
		return nil, fmt.Errorf("%s: save tokens: %w", op, err)
	}

	log.From(ctx).Info("login_ok",
		slog.String("op", op),
		slog.String("email", redact.Email(email)),
	)

	return out.User, nil
}

// Logout отзывает текущий access-токен на сервере и стирает локальную пару.
// Локальная пара стирается даже при ошибке сервера: цель команды —
// завершить сессию на этой машине.
func (c *Client) Logout(ctx context.Context) error {
	const op = "client.auth.Logout"

	var out models.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/logout",
		out:    &out,
	})

	if cerr := c.tokens.Clear(); cerr != nil {
		return fmt.Errorf("%s: clear tokens: %w", op, cerr)
	}

	return err
}

// Me возвращает профиль текущего пользователя.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/auth/me",
		out:    &out,
	}); err != nil {
		return nil, err
	}

	return &out, nil
}

// SessionInfo — сведения о сохранённой сессии, извлечённые из access-токена.
type SessionInfo struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// SessionInfo декодирует клеймы сохранённого access-токена без проверки
// подписи — ключа подписи у клиента нет, сведения нужны только для
// отображения (когда истекает сессия и чья она).
func (c *Client) SessionInfo() (*SessionInfo, error) {
	const op = "client.auth.SessionInfo"

	pair, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("%s: %w", op, tokenstore.ErrNotFound)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(pair.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info := &SessionInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}
