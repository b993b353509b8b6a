// Нормализация ошибок транспорта в единый формат для вызывающего кода.
//
// Любая неудача вызова API приводится к паре {error, message}:
//   - error — короткий стабильный код для машиночитаемой обработки;
//   - message — безопасное человекочитаемое описание.
//
// Коды либо приходят из тела ответа бэкенда (VALIDATION_ERROR, EMAIL_EXISTS,
// INVALID_CREDENTIALS, DIARY_NOT_FOUND, FORBIDDEN и т.д.), либо назначаются
// клиентом: network_error (ответа не было вовсе), auth_error (401, который
// не удалось погасить refresh-ем), unknown_error (неструктурированный сбой).
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Коды, назначаемые самим клиентом.
const (
	CodeNetworkError = "network_error"
	CodeAuthError    = "auth_error"
	CodeUnknownError = "unknown_error"
)

// APIError — единый формат ошибки вызова API.
type APIError struct {
	// Code — стабильный код ошибки (поле "error" в нормализованном виде).
	Code string `json:"error"`
	// Message — человекочитаемое описание.
	Message string `json:"message"`
	// Status — HTTP-статус ответа; 0, если ответа не было.
	Status int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode сообщает, нормализована ли ошибка в указанный код.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}

	return false
}

// errorBody — формы тела ошибки, которые реально присылает бэкенд:
// {"error": "<текст>", "code": "<КОД>"} либо {"error": "<код>", "message": "<текст>"}.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// normalizeTransport — ответа не было (обрыв сети, DNS, таймаут).
func normalizeTransport(err error) *APIError {
	msg := "Network Error"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = fmt.Sprintf("request timed out: %v", err)
	} else if err != nil {
		msg = fmt.Sprintf("Network Error: %v", err)
	}

	return &APIError{Code: CodeNetworkError, Message: msg}
}

// normalizeResponse — ответ получен со статусом >= 400.
//
// Приоритет источников кода: поле "code", затем "error" (если рядом есть
// "message", т.е. "error" играет роль кода), затем умолчания клиента.
func normalizeResponse(status int, body []byte) *APIError {
	parsed := errorBody{}
	_ = json.Unmarshal(body, &parsed)

	code := ""
	message := ""

	switch {
	case parsed.Code != "":
		code = parsed.Code
		message = parsed.Message
		if message == "" {
			message = parsed.Error
		}
	case parsed.Error != "" && parsed.Message != "":
		code = parsed.Error
		message = parsed.Message
	case parsed.Error != "":
		message = parsed.Error
	case parsed.Message != "":
		message = parsed.Message
	}

	if code == "" {
		if status == http.StatusUnauthorized {
			code = CodeAuthError
		} else {
			code = CodeUnknownError
		}
	}

	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{Code: code, Message: message, Status: status}
}
