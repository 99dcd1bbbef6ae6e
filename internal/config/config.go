package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/khrees2412/talentmatch/internal/assessment"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Database   DatabaseConfig          `mapstructure:"database"`
	Log        LogConfig               `mapstructure:"log"`
	Server     ServerConfig            `mapstructure:"server"`
	Matching   matcher.Config          `mapstructure:"matching"`
	Assessment assessment.GraderConfig `mapstructure:"assessment"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var AppConfig *Config

const (
	dirName   = ".talentmatch"
	envPrefix = "TALENTMATCH"
)

// Dir returns the directory holding the config file and database.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// Initialize loads or creates the configuration file at path. An empty path
// selects ~/.talentmatch/config.yaml.
func Initialize(path string) error {
	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := createDefaultConfig(path); err != nil {
			return err
		}
	}

	cfg, err := Load(viper.GetViper(), path)
	if err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// Load reads path into v and decodes the result. Environment variables such
// as TALENTMATCH_SERVER_ADDR override file values.
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, filepath.Dir(path))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the matching and assessment sections.
func (c *Config) Validate() error {
	if err := c.Matching.Validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	if err := c.Assessment.Validate(); err != nil {
		return fmt.Errorf("assessment: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("database.path", filepath.Join(dir, "talentmatch.db"))
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("server.addr", ":8080")

	m := matcher.DefaultConfig()
	v.SetDefault("matching.workers", m.Workers)
	setDirectionDefaults(v, "matching.jobs_for_candidate", m.JobsForCandidate)
	setDirectionDefaults(v, "matching.candidates_for_job", m.CandidatesForJob)

	a := assessment.DefaultGraderConfig()
	v.SetDefault("assessment.bank_path", a.BankPath)
	v.SetDefault("assessment.length_target", a.LengthTarget)
	v.SetDefault("assessment.length_weight", a.LengthWeight)
	v.SetDefault("assessment.vocabulary", a.Vocabulary)
	v.SetDefault("assessment.vocabulary_weight", a.VocabularyWeight)
	v.SetDefault("assessment.excellent_ratio", a.ExcellentRatio)
	v.SetDefault("assessment.good_ratio", a.GoodRatio)
}

func setDirectionDefaults(v *viper.Viper, prefix string, d matcher.DirectionConfig) {
	v.SetDefault(prefix+".top_k", d.TopK)

	v.SetDefault(prefix+".weights.skills", d.Weights.Skills)
	v.SetDefault(prefix+".weights.location", d.Weights.Location)
	v.SetDefault(prefix+".weights.experience", d.Weights.Experience)
	v.SetDefault(prefix+".weights.text", d.Weights.Text)
	v.SetDefault(prefix+".weights.job_type", d.Weights.JobType)
	v.SetDefault(prefix+".weights.salary", d.Weights.Salary)

	v.SetDefault(prefix+".boosts.verified", d.Boosts.Verified)
	v.SetDefault(prefix+".boosts.recent", d.Boosts.Recent)
	v.SetDefault(prefix+".boosts.recent_window", d.Boosts.RecentWindow)

	v.SetDefault(prefix+".thresholds.skills", d.Thresholds.Skills)
	v.SetDefault(prefix+".thresholds.location", d.Thresholds.Location)
	v.SetDefault(prefix+".thresholds.location_good", d.Thresholds.LocationGood)
	v.SetDefault(prefix+".thresholds.experience", d.Thresholds.Experience)
	v.SetDefault(prefix+".thresholds.text", d.Thresholds.Text)
	v.SetDefault(prefix+".thresholds.salary", d.Thresholds.Salary)
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Talentmatch Configuration
log:
  json: false
  debug: false

server:
  addr: ":8080"

# Ranking weights per direction. Weights must sum to at most 1.
matching:
  jobs_for_candidate:
    top_k: 10
    weights: {skills: 0.30, location: 0.20, experience: 0.20, text: 0.15, job_type: 0.10, salary: 0.05}
    boosts: {verified: 0.10, recent: 0.05, recent_window: 168h}
  candidates_for_job:
    top_k: 20
    weights: {skills: 0.35, location: 0.15, experience: 0.25, text: 0.15, job_type: 0.05, salary: 0.05}
    boosts: {verified: 0.10, recent: 0.05, recent_window: 168h}

assessment:
  # bank_path: /path/to/questions.yaml
  length_target: 50
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Keys accepted by Set.
var SettableKeys = []string{
	"database.path",
	"log.json",
	"log.debug",
	"server.addr",
	"assessment.bank_path",
	"assessment.length_target",
	"matching.workers",
	"matching.jobs_for_candidate.top_k",
	"matching.candidates_for_job.top_k",
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file in use
func GetConfigPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	dir, _ := Dir()
	return filepath.Join(dir, "config.yaml")
}
