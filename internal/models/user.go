package models

import "time"

// User — профиль пользователя, как его отдаёт API (/auth/me, регистрация).
// Пароль и его хэш на клиент никогда не приходят.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
