package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the environment, after applying envFile when it exists.
// Variables already set in the process win over the file.
func Load(envFile string) (App, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return App{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Env:         getenv("APP_ENV", "dev"),
	}
	if cfg.DatabaseURL == "" {
		return App{}, errors.New("missing env DATABASE_URL")
	}

	maxConns, err := strconv.ParseInt(getenv("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil || maxConns <= 0 {
		return App{}, fmt.Errorf("invalid DB_MAX_CONNS %q", os.Getenv("DB_MAX_CONNS"))
	}
	cfg.DBMaxConns = int32(maxConns)

	cfg.BookingOwnerEmptyIsError, err = strconv.ParseBool(getenv("BOOKING_OWNER_EMPTY_IS_ERROR", "false"))
	if err != nil {
		return App{}, fmt.Errorf("invalid BOOKING_OWNER_EMPTY_IS_ERROR: %w", err)
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
