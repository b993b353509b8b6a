// tokenstore — локальное хранилище пары токенов на стороне клиента.
//
// Хранится ровно одна активная пара (access + refresh) под фиксированными
// ключами. Чтение и запись синхронные; Clear удаляет обе части сразу —
// частично очищенной пары не бывает.
package tokenstore

import "errors"

// ErrNotFound — сохранённой пары токенов нет (пользователь не залогинен).
var ErrNotFound = errors.New("token pair not found")

// Pair — сохраняемая пара токенов.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store описывает абстракцию хранилища токенов.
//
// Реализации обязаны быть безопасными для конкурентного использования:
// клиент читает access-токен на каждый запрос, а координатор refresh
// перезаписывает его из другой горутины.
type Store interface {
	// Load возвращает текущую пару или ErrNotFound.
	Load() (Pair, error)
	// Save полностью заменяет сохранённую пару.
	Save(p Pair) error
	// SetAccess заменяет только access-токен, не трогая refresh-токен.
	SetAccess(access string) error
	// Clear удаляет сохранённую пару. Отсутствие пары — не ошибка.
	Clear() error
}
