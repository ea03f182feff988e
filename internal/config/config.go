package config

import (
	"os"
	"strconv"

	"github.com/patterson-s/fast/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Paths    PathConfig
	Horizon  HorizonConfig
	Cohort   CohortConfig
}

// DatabaseConfig holds database connection settings. The database path is
// optional: workbook loading is the default.
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths for the workbook loaders
type PathConfig struct {
	HistoricalFile string
	ForecastFile   string
}

// HorizonConfig declares the historical horizon series are gap-filled over
type HorizonConfig struct {
	StartMonthID int
	EndMonthID   int
}

// CohortConfig holds peer-group selection settings
type CohortConfig struct {
	TargetSize int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Paths: PathConfig{
			HistoricalFile: os.Getenv("FAST_HISTORICAL_FILE"),
			ForecastFile:   os.Getenv("FAST_FORECAST_FILE"),
		},
		Cohort: CohortConfig{
			TargetSize: 3,
		},
	}

	start, err := intEnv("FAST_HORIZON_START", 481) // January 2020
	if err != nil {
		return nil, err
	}
	end, err := intEnv("FAST_HORIZON_END", 548) // August 2025
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.ConfigInvalid("FAST_HORIZON_END precedes FAST_HORIZON_START")
	}
	config.Horizon = HorizonConfig{StartMonthID: start, EndMonthID: end}

	if size, err := intEnv("FAST_COHORT_SIZE", config.Cohort.TargetSize); err != nil {
		return nil, err
	} else if size <= 0 {
		return nil, errors.ConfigInvalid("FAST_COHORT_SIZE must be positive")
	} else {
		config.Cohort.TargetSize = size
	}

	if config.Database.URL == "" && config.Paths.HistoricalFile == "" {
		return nil, errors.ConfigInvalid("either DATABASE_URL or FAST_HISTORICAL_FILE is required")
	}

	return config, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return v, nil
}
