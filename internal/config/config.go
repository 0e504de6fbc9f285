package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"ib-riskcalc/internal/scoring"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN      string
	ServerPort string

	OpenAIKey       string
	OpenAIModel     string
	AdvisoryTimeout time.Duration

	// пороги полос риска (нижние границы) и лимиты — политика
	// организации, настраивается без пересборки
	BandLow      float64
	BandMedium   float64
	BandHigh     float64
	BandCritical float64

	ResidualFloor float64
	ResidualLimit float64

	MaturityEdges [4]float64
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:       os.Getenv("DB_DSN"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: os.Getenv("OPENAI_MODEL"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.OpenAIKey == "" {
		log.Println("OPENAI_API_KEY is not set, advisory generation will fall back to catalog questions")
	}

	cfg.AdvisoryTimeout = envDuration("ADVISORY_TIMEOUT", 20*time.Second)

	cfg.BandLow = envFloat("RISK_BAND_LOW", 3)
	cfg.BandMedium = envFloat("RISK_BAND_MEDIUM", 6)
	cfg.BandHigh = envFloat("RISK_BAND_HIGH", 12)
	cfg.BandCritical = envFloat("RISK_BAND_CRITICAL", 20)

	cfg.ResidualFloor = envFloat("RESIDUAL_FLOOR", 0.5)
	cfg.ResidualLimit = envFloat("RESIDUAL_LIMIT", 6)

	cfg.MaturityEdges = [4]float64{
		envFloat("MATURITY_EDGE_2", 20),
		envFloat("MATURITY_EDGE_3", 40),
		envFloat("MATURITY_EDGE_4", 60),
		envFloat("MATURITY_EDGE_5", 80),
	}

	return cfg
}

func (c *Config) RiskPolicy() scoring.RiskPolicy {
	return scoring.RiskPolicy{
		Bands: scoring.BandConfig{
			Low:      c.BandLow,
			Medium:   c.BandMedium,
			High:     c.BandHigh,
			Critical: c.BandCritical,
		},
		ResidualFloor: c.ResidualFloor,
	}
}

func (c *Config) MaturityPolicy() scoring.MaturityPolicy {
	pol := scoring.DefaultMaturityPolicy()
	pol.LevelEdges = c.MaturityEdges
	pol.ResidualLimit = c.ResidualLimit
	pol.Bands = c.RiskPolicy().Bands
	return pol
}

func envFloat(name string, def float64) float64 {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", name, err)
	}
	return v
}

func envDuration(name string, def time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("invalid %s: %v", name, err)
	}
	return v
}
