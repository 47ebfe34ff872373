package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Rules is the validation policy for report drafts. The enumerations and the
// allowed minute set vary between deployments, so they are configuration
// rather than constants.
type Rules struct {
	Technicians    []string
	Plants         []string
	AllowedMinutes []int
	MaxHours       int
}

type Config struct {
	Env         string
	LogLevel    string
	Addr        string
	StoreURL    string
	DBType      string
	DBDSN       string
	ReportsFile string
	SessionFile string
	Rules       Rules
}

var defaultTechnicians = []string{
	"Carlos Cisneros",
	"Juan Carrión",
	"César Sánchez",
	"Miguel Lozada",
	"Roberto Córdova",
	"Alex Haro",
	"Dario Ojeda",
	"Israel Pérez",
	"José Urquizo",
	"Kevin Vargas",
	"Edisson Bejarano",
	"Leonardo Ballesteros",
	"Marlon Ortiz",
}

var defaultPlants = []string{"CMA", "CMS", "PT", "CP", "MC"}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:         getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Addr:        getEnv("LISTEN_ADDR", ":8088"),
			StoreURL:    getEnv("STORE_URL", "http://localhost:8088"),
			DBType:      getEnv("STORAGE_BACKEND", "file"),
			DBDSN:       getEnv("POSTGRES_DSN", ""),
			ReportsFile: getEnv("REPORTS_FILE", "data/reports.json"),
			SessionFile: getEnv("SESSION_FILE", "data/session.json"),
			Rules: Rules{
				Technicians:    getEnvList("TECHNICIANS", defaultTechnicians),
				Plants:         getEnvList("PLANTS", defaultPlants),
				AllowedMinutes: getEnvInts("ALLOWED_MINUTES", []int{0, 30}),
				MaxHours:       getEnvInt("MAX_HOURS", 12),
			},
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.ReportsFile == "" {
		return errors.New("File storage requires REPORTS_FILE to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return c.Rules.Validate()
}

func (r Rules) Validate() error {
	if len(r.Technicians) == 0 || len(r.Plants) == 0 {
		return errors.New("technician and plant lists must not be empty")
	}
	if r.MaxHours < 1 || r.MaxHours > 23 {
		return errors.New("MAX_HOURS must be between 1 and 23")
	}
	if len(r.AllowedMinutes) == 0 {
		return errors.New("ALLOWED_MINUTES must not be empty")
	}
	for _, m := range r.AllowedMinutes {
		if m < 0 || m > 59 {
			return fmt.Errorf("ALLOWED_MINUTES entry %d out of range", m)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInts(key string, fallback []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fallback
		}
		out = append(out, n)
	}
	return out
}

func loadDotEnv() error {
	f, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) == 2 {
			os.Setenv(kv[0], kv[1])
		}
	}
	return scanner.Err()
}
