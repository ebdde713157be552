package config

import (
	"os"
	"sync"
	"time"
)

type PortalConfig struct {
	Provider       string // "gemini" or "openrouter"
	AnalyzeTimeout time.Duration
	ProofDelay     time.Duration
}

var (
	portalConfig *PortalConfig
	portalOnce   sync.Once
)

func LoadPortalConfig() *PortalConfig {
	portalOnce.Do(func() {
		provider := os.Getenv("ANALYSIS_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		portalConfig = &PortalConfig{
			Provider:       provider,
			AnalyzeTimeout: durationEnv("ANALYZE_TIMEOUT", 30*time.Second),
			ProofDelay:     durationEnv("PROOF_DELAY", 2*time.Second),
		}
	})
	return portalConfig
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
