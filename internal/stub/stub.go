// stub — in-memory реализация поверхности Thought Diary API.
//
// Это тестовый двойник настоящего бэкенда, а не он сам: без БД, без
// внешнего модельного API, с минимумом бизнес-правил — ровно столько,
// сколько нужно, чтобы клиент и его тесты видели настоящие семантики
// эндпойнтов (формат ошибок, коды, жизненный цикл токенов, пагинацию).
// Используется интеграционными тестами клиента и cmd/diary-stub.
package stub

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"thought-diary-cli/internal/models"
)

// Config — параметры стаба.
type Config struct {
	// JWTSecret — ключ подписи access-токенов (HS256).
	JWTSecret string
	// AccessTTL/RefreshTTL — времена жизни токенов.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// Issuer — значение клейма iss.
	Issuer string
}

func (c *Config) defaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = "stub-secret"
	}
	if c.AccessTTL <= 0 {
		c.AccessTTL = 15 * time.Minute
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 30 * 24 * time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "thought-diary-stub"
	}
}

type user struct {
	id           int64
	email        string
	passwordHash []byte
	createdAt    time.Time
	updatedAt    time.Time
}

type refreshSession struct {
	userID    int64
	expiresAt time.Time
}

// Server — состояние стаба. Все поля под mu.
type Server struct {
	cfg Config

	mu        sync.Mutex
	users     map[int64]*user
	emails    map[string]int64
	diaries   []*models.Diary
	refresh   map[string]refreshSession
	revoked   map[string]struct{}
	nextUser  int64
	nextDiary int64
}

// New создаёт пустой стаб.
func New(cfg Config) *Server {
	cfg.defaults()

	return &Server{
		cfg:       cfg,
		users:     make(map[int64]*user),
		emails:    make(map[string]int64),
		refresh:   make(map[string]refreshSession),
		revoked:   make(map[string]struct{}),
		nextUser:  1,
		nextDiary: 1,
	}
}

// Handler собирает chi-роутер со всеми эндпойнтами API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// public
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/refresh", s.handleRefresh)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/docs", s.handleDocs)

	// protected
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/auth/logout", s.handleLogout)
		r.Get("/auth/me", s.handleMe)

		r.Route("/diaries", func(r chi.Router) {
			r.Get("/", s.handleListDiaries)
			r.Post("/", s.handleCreateDiary)
			r.Get("/stats", s.handleStats)
			r.Get("/{id}", s.handleGetDiary)
			r.Put("/{id}", s.handleUpdateDiary)
			r.Delete("/{id}", s.handleDeleteDiary)
		})
	})

	return r
}
