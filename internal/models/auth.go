// Входные/выходные модели REST-эндпойнтов /auth/*.
package models

// TokenPair — пара токенов на стороне клиента.
//
// Описание:
//   - AccessToken — короткоживущий JWT, авторизует вызовы API;
//   - RefreshToken — долгоживущий секрет, предъявляется только
//     эндпойнту POST /auth/refresh для выпуска нового access-токена.
//
// Активная пара у клиента ровно одна; refresh ротирует только access-часть.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ POST /auth/login.
// User бэкенд может не прислать (поле опционально).
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// RefreshResponse — ответ POST /auth/refresh: только новый access-токен,
// refresh-токен остаётся прежним.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
