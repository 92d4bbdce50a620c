package config

import "github.com/jrsteele09/go-forum-connect/internal/apperrors"

type Config interface {
	EnvConfig
	ConnectConfig
}

type mainConfig struct {
	envVars
	connectVars
}

// New reads the environment exactly once, validates the result, and
// returns an immutable configuration value. Every component receives this
// value by injection; nothing re-reads environment state per request.
//
// Validation failure is fatal: the process must not serve traffic without
// a usable secret and forum origin.
func New() (Config, error) {
	cfg := &mainConfig{
		envVars: loadEnvVars(),
	}
	connect, err := loadConnectVars()
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "%s", err.Error())
	}
	cfg.connectVars = connect
	return cfg, nil
}
