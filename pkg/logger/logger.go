package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный логгер судьи. Пригоден сразу (важно для тестов),
// но main обязан один раз вызвать Init для настройки из окружения.
var Log = logrus.New()

// Init настраивает глобальный логгер.
//
// Судья общается с внешним harness через stdout, поэтому все логи
// обязаны уходить в stderr — иначе они смешаются с протокольными кадрами.
func Init() {
	// Уровень логирования берем из окружения, по умолчанию "info".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" — для сбора логов в проде, "text" — для локальной отладки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stderr)
}
