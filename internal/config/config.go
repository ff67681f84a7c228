package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"taskpad/internal/logger"
)

// SavePolicy decides when the task list is written to disk.
type SavePolicy string

const (
	// SavePolicyMutation writes after every add, edit, toggle and delete, and again on exit.
	SavePolicyMutation SavePolicy = "mutation"
	// SavePolicyExit writes only when the window closes or the process is signalled.
	SavePolicyExit SavePolicy = "exit"
)

const (
	DefaultDataFile      = "tasks.dat"
	DefaultClockInterval = time.Second
)

type Config struct {
	DataFile      string
	SavePolicy    SavePolicy
	Theme         string
	ConfirmDelete bool
	ClockInterval time.Duration
	LogLevel      logger.LogLevel
	JSONLogs      bool
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		DataFile:      DefaultDataFile,
		SavePolicy:    SavePolicyMutation,
		Theme:         "light",
		ConfirmDelete: true,
		ClockInterval: DefaultClockInterval,
		LogLevel:      logger.InfoLevel,
	}
}

// Load applies environment overrides on top of Default. A value that cannot
// be used falls back to its default and is described in warnings.
func Load() (Config, []string) {
	def := Default()
	cfg := def
	cfg.DataFile = envStr("TASKPAD_DATA_FILE", cfg.DataFile)
	cfg.SavePolicy = SavePolicy(strings.ToLower(envStr("TASKPAD_SAVE_POLICY", string(cfg.SavePolicy))))
	cfg.Theme = strings.ToLower(envStr("TASKPAD_THEME", cfg.Theme))
	cfg.ConfirmDelete = envBool("TASKPAD_CONFIRM_DELETE", cfg.ConfirmDelete)
	cfg.JSONLogs = envBool("TASKPAD_JSON_LOGS", cfg.JSONLogs)

	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = logger.ParseLevel(lvl)
	} else if os.Getenv("DEBUG") == "1" {
		cfg.LogLevel = logger.DebugLevel
	}

	var warnings []string
	if !cfg.SavePolicy.valid() {
		warnings = append(warnings, fmt.Sprintf("TASKPAD_SAVE_POLICY %q is not %q or %q, using %q",
			cfg.SavePolicy, SavePolicyMutation, SavePolicyExit, def.SavePolicy))
		cfg.SavePolicy = def.SavePolicy
	}
	if !validTheme(cfg.Theme) {
		warnings = append(warnings, fmt.Sprintf("TASKPAD_THEME %q is not light or dark, using %q", cfg.Theme, def.Theme))
		cfg.Theme = def.Theme
	}

	if err := cfg.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("config validation: %v, using defaults", err))
		return def, warnings
	}
	return cfg, warnings
}

func (p SavePolicy) valid() bool {
	return p == SavePolicyMutation || p == SavePolicyExit
}

func validTheme(name string) bool {
	return name == "light" || name == "dark"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("TASKPAD_DATA_FILE must not be empty")
	}
	if !c.SavePolicy.valid() {
		return fmt.Errorf("TASKPAD_SAVE_POLICY must be %q or %q, got %q", SavePolicyMutation, SavePolicyExit, c.SavePolicy)
	}
	if !validTheme(c.Theme) {
		return fmt.Errorf("TASKPAD_THEME must be light or dark, got %q", c.Theme)
	}
	if c.ClockInterval <= 0 {
		return fmt.Errorf("clock interval must be positive, got %s", c.ClockInterval)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
