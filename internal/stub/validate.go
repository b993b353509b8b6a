package stub

import (
	"regexp"
	"strings"
)

// Правила повторяют серверные: упрощённый RFC 5322 для e-mail,
// политика сложности пароля, лимит длины записи 10000 символов.

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return email != "" && emailRe.MatchString(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// validPassword возвращает текст первой нарушенной политики.
func validPassword(password string) (bool, string) {
	switch {
	case len(password) < 8:
		return false, "Password must be at least 8 characters long"
	case !upperRe.MatchString(password):
		return false, "Password must contain at least one uppercase letter"
	case !lowerRe.MatchString(password):
		return false, "Password must contain at least one lowercase letter"
	case !digitRe.MatchString(password):
		return false, "Password must contain at least one digit"
	case !specialRe.MatchString(password):
		return false, "Password must contain at least one special character"
	}

	return true, ""
}

const maxContentLen = 10000

func validContent(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}

	return len(content) <= maxContentLen
}
