// config — источник загрузки конфигурации клиента Thought Diary.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string       `yaml:"env" env:"ENV" env-default:"local"`
	API    APIConfig    `yaml:"api"`
	Tokens TokensConfig `yaml:"tokens"`
	Stub   StubConfig   `yaml:"stub"`
}

// APIConfig — параметры доступа к REST-бэкенду.
type APIConfig struct {
	// BaseURL — корень API, например "http://localhost:5000".
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:5000"`
	// Timeout — общий таймаут на один HTTP-запрос.
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
}

// TokensConfig — локальное хранилище пары токенов.
type TokensConfig struct {
	// Path — файл с токенами; пустое значение означает
	// <user config dir>/thought-diary/tokens.json.
	Path string `yaml:"path" env:"TOKENS_PATH" env-default:""`
}

// StubConfig — локальный dev-сервер (cmd/diary-stub).
type StubConfig struct {
	Host       string        `yaml:"host" env:"STUB_HOST" env-default:"127.0.0.1"`
	Port       string        `yaml:"port" env:"STUB_PORT" env-default:"5000"`
	JWTSecret  string        `yaml:"jwt_secret" env:"STUB_JWT_SECRET" env-default:"stub-secret"`
	AccessTTL  time.Duration `yaml:"access_ttl" env:"STUB_ACCESS_TTL" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env:"STUB_REFRESH_TTL" env-default:"720h"`
}

func (s StubConfig) Addr() string { return net.JoinHostPort(s.Host, s.Port) }

// File возвращает путь к файлу токенов с подстановкой значения по умолчанию.
func (t TokensConfig) File() (string, error) {
	if t.Path != "" {
		return t.Path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}

	return filepath.Join(dir, "thought-diary", "tokens.json"), nil
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return &cfg, nil
}
