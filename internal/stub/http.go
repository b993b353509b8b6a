package stub

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxUserKey struct{}

type authedUser struct {
	id    int64
	email string
	jti   string
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeErr — конверт ошибки в формате настоящего бэкенда: {"error", "code"}.
func writeErr(w http.ResponseWriter, status int, text, code string) {
	writeJSON(w, status, map[string]string{
		"error": text,
		"code":  code,
	})
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// requireAuth проверяет bearer access-токен и кладёт пользователя в контекст.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
			writeErr(w, http.StatusUnauthorized, "Missing authorization token", "TOKEN_MISSING")
			return
		}

		userID, email, jti, err := s.parseAccess(strings.TrimSpace(auth[len(prefix):]))
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "Invalid or expired token", "TOKEN_INVALID")
			return
		}

		s.mu.Lock()
		_, revoked := s.revoked[jti]
		_, exists := s.users[userID]
		s.mu.Unlock()

		if revoked || !exists {
			writeErr(w, http.StatusUnauthorized, "Invalid or expired token", "TOKEN_INVALID")
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey{}, authedUser{
			id:    userID,
			email: email,
			jti:   jti,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser достаёт пользователя, положенного requireAuth.
func currentUser(r *http.Request) authedUser {
	u, _ := r.Context().Value(ctxUserKey{}).(authedUser)
	return u
}
