package logger

import (
	"os"

	"go.uber.org/zap"
)

// L is the application-wide sugared logger. Init must run before any other
// package touches it.
var L *zap.SugaredLogger

func Init() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	L = log.Sugar()
}

func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
