package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/config"
)

// New builds the root logger. Every entry carries the environment name.
func New(cfg *config.Config) (*zap.Logger, error) {
	opts := []zap.Option{zap.Fields(zap.String("env", cfg.Env))}

	var (
		lg  *zap.Logger
		err error
	)
	if cfg.Env == "production" {
		lg, err = zap.NewProduction(opts...)
	} else {
		lg, err = zap.NewDevelopment(opts...)
	}
	if err != nil {
		return nil, err
	}

	return lg.Named("euroexplorer"), nil
}
