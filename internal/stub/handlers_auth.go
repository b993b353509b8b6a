package stub

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "Malformed request body", "VALIDATION_ERROR")
		return
	}

	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		writeErr(w, http.StatusBadRequest, "Invalid email format", "VALIDATION_ERROR")
		return
	}

	if ok, reason := validPassword(in.Password); !ok {
		writeErr(w, http.StatusBadRequest, reason, "VALIDATION_ERROR")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Registration failed", "REGISTRATION_ERROR")
		return
	}

	s.mu.Lock()
	if _, taken := s.emails[email]; taken {
		s.mu.Unlock()
		writeErr(w, http.StatusBadRequest, "Email already registered", "EMAIL_EXISTS")
		return
	}

	now := time.Now().UTC()
	u := &user{
		id:           s.nextUser,
		email:        email,
		passwordHash: hash,
		createdAt:    now,
		updatedAt:    now,
	}
	s.nextUser++
	s.users[u.id] = u
	s.emails[email] = u.id
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, userResponse{
		ID:        u.id,
		Email:     u.email,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "Malformed request body", "VALIDATION_ERROR")
		return
	}

	email := normalizeEmail(in.Email)

	s.mu.Lock()
	var u *user
	if id, ok := s.emails[email]; ok {
		u = s.users[id]
	}
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(in.Password)) != nil {
		writeErr(w, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	now := time.Now().UTC()
	access, err := s.mintAccess(u.id, u.email, now)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Login failed", "LOGIN_ERROR")
		return
	}

	s.mu.Lock()
	refresh, err := s.newRefreshToken(u.id, now)
	s.mu.Unlock()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Login failed", "LOGIN_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "Bearer",
	})
}

// handleRefresh авторизуется refresh-токеном и выпускает только новый
// access-токен; refresh-токен остаётся прежним.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	const prefix = "Bearer "

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
		writeErr(w, http.StatusUnauthorized, "Missing refresh token", "TOKEN_MISSING")
		return
	}

	token := strings.TrimSpace(auth[len(prefix):])
	now := time.Now().UTC()

	s.mu.Lock()
	sess, ok := s.refresh[token]
	if ok && now.After(sess.expiresAt) {
		delete(s.refresh, token)
		ok = false
	}
	var u *user
	if ok {
		u = s.users[sess.userID]
	}
	s.mu.Unlock()

	if u == nil {
		writeErr(w, http.StatusUnauthorized, "Invalid or expired refresh token", "TOKEN_INVALID")
		return
	}

	access, err := s.mintAccess(u.id, u.email, now)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Refresh failed", "REFRESH_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": access,
		"token_type":   "Bearer",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	s.mu.Lock()
	s.revoked[u.jti] = struct{}{}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully logged out",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	au := currentUser(r)

	s.mu.Lock()
	u := s.users[au.id]
	s.mu.Unlock()

	if u == nil {
		writeErr(w, http.StatusNotFound, "User not found", "USER_NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:        u.id,
		Email:     u.email,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	})
}
