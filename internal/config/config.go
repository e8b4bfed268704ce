package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sesamexx/PacmanLocalForked/pkg/logger"
)

// Config — параметры запуска судьи.
type Config struct {
	// Бюджеты времени на ответ агента. Первый обмен получает расширенный
	// бюджет — SDK агента успевает инициализироваться.
	FirstRoundBudget time.Duration
	RoundBudget      time.Duration
	PlayerBudget     time.Duration // интерактивный игрок думает дольше AI

	// MaxOutputLength — лимит длины ответа агента в байтах (OLE при превышении).
	MaxOutputLength int

	// MaxLevel — партия заканчивается, когда движок доходит до этого уровня.
	MaxLevel int

	// ReplayDir — каталог для реплеев локального режима.
	ReplayDir string

	// SpectatorPort — порт websocket-сервера зрителей (локальный режим).
	SpectatorPort string
}

// Load читает конфигурацию из окружения (с .env, если он есть).
// Все переменные опциональны: судья обязан стартовать под harness,
// который не передает никакого окружения.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debugf(".env not loaded: %v", err)
	}

	return Config{
		FirstRoundBudget: getEnvDurationMS("JUDGER_FIRST_ROUND_MS", 10000),
		RoundBudget:      getEnvDurationMS("JUDGER_ROUND_MS", 3000),
		PlayerBudget:     getEnvDurationMS("JUDGER_PLAYER_MS", 120000),
		MaxOutputLength:  getEnvInt("JUDGER_MAX_OUTPUT", 1<<21),
		MaxLevel:         getEnvInt("JUDGER_MAX_LEVEL", 3),
		ReplayDir:        getEnvStr("JUDGER_REPLAY_DIR", "replays"),
		SpectatorPort:    getEnvStr("JUDGER_SPECTATOR_PORT", "8080"),
	}
}

func getEnvStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Log.Warnf("env %s: not an integer (%q), using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDurationMS(key string, fallbackMS int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMS)) * time.Millisecond
}
