package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"botw/internal/structures"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSheetName    = "Sheet1"
	DefaultRankingTitle = "Malediction BOTW Rankings:"
)

var ErrMissingConfig = errors.New("missing required configuration")

// Field names a required setting by the environment variable that provides it.
type Field string

const (
	SpreadsheetID   Field = "SPREADSHEET_ID"
	DiscordToken    Field = "DISCORD_TOKEN"
	CredentialsPath Field = "CREDENTIALS_PATH"
	ApplicationID   Field = "APPLICATION_ID"
)

// Load builds the configuration from the saved config file, an optional explicit
// file (JSON or YAML) and the environment, later sources winning.
func Load(explicitPath string) (structures.Config, error) {
	cfg := structures.Config{}

	cfgPath, err := Path()
	if err != nil {
		return cfg, err
	}
	if err := readFile(cfgPath, &cfg, true); err != nil {
		return cfg, err
	}

	if explicitPath != "" {
		if err := readFile(explicitPath, &cfg, false); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}

	if cfg.SheetName == "" {
		cfg.SheetName = DefaultSheetName
	}
	if cfg.RankingTitle == "" {
		cfg.RankingTitle = DefaultRankingTitle
	}
	if cfg.CredentialsPath != "" && !filepath.IsAbs(cfg.CredentialsPath) {
		abs, err := filepath.Abs(cfg.CredentialsPath)
		if err != nil {
			return cfg, fmt.Errorf("resolve credentials path: %w", err)
		}
		cfg.CredentialsPath = abs
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any non-empty environment values.
func ApplyEnv(cfg *structures.Config, getenv func(string) string) error {
	if v := getenv(string(SpreadsheetID)); v != "" {
		cfg.SheetID = v
	}
	if v := getenv(string(DiscordToken)); v != "" {
		cfg.DiscordToken = v
	}
	if v := getenv(string(CredentialsPath)); v != "" {
		cfg.CredentialsPath = v
	}
	if v := getenv(string(ApplicationID)); v != "" {
		cfg.ApplicationID = v
	}
	if v := getenv("GUILD_ID"); v != "" {
		cfg.GuildID = v
	}
	if v := getenv("SHEET_NAME"); v != "" {
		cfg.SheetName = v
	}
	if v := getenv("RANKING_TITLE"); v != "" {
		cfg.RankingTitle = v
	}
	if v := getenv("METRICS_ADDRESS"); v != "" {
		cfg.MetricsAddress = v
	}
	if v := getenv("SUBMIT_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("SUBMIT_RATE_PER_MINUTE must be a non-negative integer: %q", v)
		}
		cfg.SubmitRatePerMinute = n
	}
	return nil
}

// Validate reports every required field that is empty in a single error.
func Validate(cfg structures.Config, required ...Field) error {
	var missing []string
	for _, f := range required {
		var v string
		switch f {
		case SpreadsheetID:
			v = cfg.SheetID
		case DiscordToken:
			v = cfg.DiscordToken
		case CredentialsPath:
			v = cfg.CredentialsPath
		case ApplicationID:
			v = cfg.ApplicationID
		}
		if strings.TrimSpace(v) == "" {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

func Save(cfg structures.Config) error {
	cfgPath, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfgPath, data, 0600)
}

func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "botw", "config.json"), nil
}

func readFile(path string, cfg *structures.Config, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
