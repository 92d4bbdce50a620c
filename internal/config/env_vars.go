package config

import (
	"fmt"
	"os"
	"time"
)

const (
	portEnvVar  = "PORT"
	appNameVar  = "APP_NAME"
	envEnvVar   = "ENV"
	defaultPort = "8080"
	defaultName = "Forum Connect"
	defaultEnv  = "DEV"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type envVars struct {
	port    string
	appName string
	env     string
}

var _ EnvConfig = envVars{}

func loadEnvVars() envVars {
	port := GetEnv(portEnvVar, defaultPort)
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return envVars{
		port:    port,
		appName: GetEnv(appNameVar, defaultName),
		env:     GetEnv(envEnvVar, defaultEnv),
	}
}

func (e envVars) GetPort() string {
	return e.port
}

func (e envVars) GetAppName() string {
	return e.appName
}

func (e envVars) GetEnv() string {
	return e.env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration fails on an unparseable value rather than falling back:
// a typo in a duration setting must not silently change behaviour.
func getEnvDuration(envVar string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %w", envVar, err)
	}
	return d, nil
}
