package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type AuthConfig struct {
	JWTSecret       string
	ExpirationHours int
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "skillchain-demo-secret"
			log.Println("Warning: JWT_SECRET not set, using demo secret")
		}
		hours := 24
		if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				hours = parsed
			}
		}
		authConfig = &AuthConfig{
			JWTSecret:       secret,
			ExpirationHours: hours,
		}
	})
	return authConfig
}
