package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	// Addr is the local listen address for the API and the embedded UI page.
	Addr string `yaml:"addr"`

	// ResultTTLMinutes bounds how long a finished summary stays downloadable.
	// 0 or less falls back to 30 minutes.
	ResultTTLMinutes int `yaml:"result_ttl_minutes"`
}

type YouTubeConfig struct {
	// Languages is the caption language preference order ("en", "ko", ...).
	// The first available track wins; empty means take whatever exists.
	Languages []string `yaml:"languages"`
}

// SummarizerConfig carries the token budget and the fixed decoding
// parameters for the summarization model. These are configuration, not
// per-request input.
type SummarizerConfig struct {
	ModelName string `yaml:"model_name"`

	// MaxInputTokens is the per-chunk input budget. Kept well below the
	// model's real context limit so estimate drift cannot overflow it.
	MaxInputTokens int `yaml:"max_input_tokens"`

	// MinOutputTokens is the lower bound on generated summary length.
	MinOutputTokens int `yaml:"min_output_tokens"`

	// MaxOutputTokens is the upper bound on generated summary length.
	MaxOutputTokens int `yaml:"max_output_tokens"`

	// NumCandidates is the candidate count requested from the model.
	NumCandidates int `yaml:"num_candidates"`

	// FinalPass re-summarizes the joined partial summaries when the
	// transcript produced more than one chunk.
	FinalPass bool `yaml:"final_pass"`

	Quota SummaryQuotaConfig `yaml:"summary_quota"`
}

// SummaryQuotaConfig defines rate/daily caps on summarization model calls.
type SummaryQuotaConfig struct {
	// RequestsPerMinute caps model calls per minute. 0 or less means no cap.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay caps model calls per day. 0 or less means no cap.
	RequestsPerDay int `yaml:"requests_per_day"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
