package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный логгер приложения. До Init пишет в stderr с настройками по умолчанию,
// чтобы пакеты можно было использовать из тестов без явной инициализации.
var Log = logrus.New()

// Init настраивает логгер из окружения и пишет в stdout.
// Вызывается один раз из main.
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput — то же, что Init, но с произвольным приёмником.
// Терминальный клиент пишет логи в файл, чтобы не портить экран.
func InitWithOutput(w io.Writer) {
	Log = logrus.New()

	// LOG_LEVEL: debug, info, warn... По умолчанию info.
	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// LOG_FORMAT=json — для сбора логов, иначе текст.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   w == os.Stdout,
		})
	}

	Log.SetOutput(w)
}

// Component возвращает запись с полем component — так помечаются все подсистемы.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
