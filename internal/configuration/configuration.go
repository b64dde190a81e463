package configuration

import (
	"dailyq/internal/scheduler"
	"dailyq/internal/score"
	"dailyq/internal/selector"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger — logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Files — locations of the dataset and of the persisted records
	Files FilesConfig `mapstructure:"files"`
	// Weights — priority formula coefficients
	Weights WeightsConfig `mapstructure:"weights"`
	// Selection — batch selection settings
	Selection SelectionConfig `mapstructure:"selection"`
	// Mail — e-mail delivery channel
	Mail MailConfig `mapstructure:"mail"`
	// Telegram — optional Telegram delivery channel
	Telegram TelegramConfig `mapstructure:"telegram"`
	// Schedule — daily run time for the schedule command
	Schedule ScheduleConfig `mapstructure:"schedule"`
	// Journal — delivery journal settings
	Journal JournalConfig `mapstructure:"journal"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level — log level: debug, info, warn, warning, error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
}

// FilesConfig contains file locations.
type FilesConfig struct {
	// Dataset — CSV file with questions.
	Dataset string `mapstructure:"dataset"`
	// Progress — JSON file with delivered question ids.
	Progress string `mapstructure:"progress"`
	// Ranked — JSON file with the ranked question list.
	Ranked string `mapstructure:"ranked"`
	// Rules — optional YAML file with eligibility rules.
	Rules string `mapstructure:"rules"`
}

// WeightsConfig holds the priority formula coefficients.
type WeightsConfig struct {
	FAANG        float64 `mapstructure:"faang"`
	Frequency    float64 `mapstructure:"frequency"`
	Rating       float64 `mapstructure:"rating"`
	Likes        float64 `mapstructure:"likes"`
	CompanyCount float64 `mapstructure:"company_count"`
}

// SelectionConfig defines batch selection parameters.
type SelectionConfig struct {
	// Count — number of questions per batch.
	Count int `mapstructure:"count"`
}

// MailConfig contains SMTP delivery parameters.
type MailConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	To       []string      `mapstructure:"to"`
	SSL      bool          `mapstructure:"ssl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TelegramConfig contains Telegram delivery parameters.
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	ChatID  int64  `mapstructure:"chat_id"`
}

// ScheduleConfig defines when the schedule command runs the delivery.
type ScheduleConfig struct {
	// Time — local time of the daily run, HH:MM.
	Time string `mapstructure:"time"`
	// Timezone — IANA timezone name, e.g. "Asia/Kolkata".
	Timezone string `mapstructure:"timezone"`
}

// JournalConfig defines delivery journal parameters.
type JournalConfig struct {
	// File — journal file path (optional, empty disables the journal)
	File string `mapstructure:"file"`
	// Maximal journal file size in MB (default 10)
	Size int `mapstructure:"size"`
	// Number of rotated journal files (default 5)
	Amount int `mapstructure:"amount"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected error.
// Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Files.Validate(); err != nil {
		return err
	}

	if err := c.Weights.Validate(); err != nil {
		return err
	}

	if err := c.Selection.Validate(); err != nil {
		return err
	}

	if err := c.Mail.Validate(); err != nil {
		return err
	}

	if err := c.Telegram.Validate(); err != nil {
		return err
	}

	if err := c.Schedule.Validate(); err != nil {
		return err
	}

	return c.Journal.Validate()
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	return nil
}

// Validate checks that the required file paths are set.
func (f *FilesConfig) Validate() error {
	if f.Dataset == "" {
		return errors.New("files.dataset: must be specified")
	}
	if f.Progress == "" {
		return errors.New("files.progress: must be specified")
	}
	if f.Ranked == "" {
		return errors.New("files.ranked: must be specified")
	}
	return nil
}

// Validate rejects negative weights.
func (w *WeightsConfig) Validate() error {
	weights := map[string]float64{
		"faang":         w.FAANG,
		"frequency":     w.Frequency,
		"rating":        w.Rating,
		"likes":         w.Likes,
		"company_count": w.CompanyCount,
	}
	for name, value := range weights {
		if value < 0 {
			return fmt.Errorf("weights.%s: must not be negative", name)
		}
	}
	return nil
}

// Score converts the section into scorer weights.
func (w *WeightsConfig) Score() score.Weights {
	return score.Weights{
		FAANG:        w.FAANG,
		Frequency:    w.Frequency,
		Rating:       w.Rating,
		Likes:        w.Likes,
		CompanyCount: w.CompanyCount,
	}
}

// Validate fills the default batch size.
func (s *SelectionConfig) Validate() error {
	if s.Count < 0 {
		return errors.New("selection.count: must not be negative")
	}
	if s.Count == 0 {
		s.Count = selector.DefaultCount
	}
	return nil
}

// Validate checks mail settings when the channel is enabled.
func (m *MailConfig) Validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Host == "" {
		return errors.New("mail.host: must be specified")
	}
	if m.From == "" {
		return errors.New("mail.from: must be specified")
	}
	if len(m.To) == 0 {
		return errors.New("mail.to: at least one recipient must be specified")
	}
	if m.Port <= 0 || m.Port > 65535 {
		return fmt.Errorf("mail.port: invalid port %d", m.Port)
	}
	return nil
}

// Validate checks Telegram settings when the channel is enabled.
func (t *TelegramConfig) Validate() error {
	if !t.Enabled {
		return nil
	}
	if t.Token == "" {
		return errors.New("telegram.token: must be specified")
	}
	if t.ChatID == 0 {
		return errors.New("telegram.chat_id: must be specified")
	}
	return nil
}

// Validate checks the schedule time and timezone.
func (s *ScheduleConfig) Validate() error {
	if _, _, err := scheduler.ParseTime(s.Time); err != nil {
		return fmt.Errorf("schedule.time: %w", err)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	return nil
}

// Validate journal parameters
func (j *JournalConfig) Validate() error {
	if j.Amount == 0 {
		j.Amount = 5
	}

	if j.Size == 0 {
		j.Size = 10
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	weights := score.DefaultWeights()

	v.SetDefault("logger.level", "info")
	v.SetDefault("files.dataset", "leetcode_dataset-lc.csv")
	v.SetDefault("files.progress", "progress.json")
	v.SetDefault("files.ranked", "ranked_questions.json")
	v.SetDefault("files.rules", "")
	v.SetDefault("weights.faang", weights.FAANG)
	v.SetDefault("weights.frequency", weights.Frequency)
	v.SetDefault("weights.rating", weights.Rating)
	v.SetDefault("weights.likes", weights.Likes)
	v.SetDefault("weights.company_count", weights.CompanyCount)
	v.SetDefault("selection.count", selector.DefaultCount)
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 465)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", []string{})
	v.SetDefault("mail.ssl", true)
	v.SetDefault("mail.timeout", 30*time.Second)
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("schedule.time", "09:00")
	v.SetDefault("schedule.timezone", "UTC")
	v.SetDefault("journal.file", "")
	v.SetDefault("journal.size", 10)
	v.SetDefault("journal.amount", 5)
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Environment variables override file values:
// a key is upper-cased with dots replaced by underscores (mail.password → MAIL_PASSWORD).
// An empty configPath uses defaults and environment only.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
