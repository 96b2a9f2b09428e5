package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir   string `json:"project_dir"`
	ResultsDir   string `json:"results_dir"`
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	LLMProvider   string `json:"llm_provider"`
	DeepThinkLLM  string `json:"deep_think_llm"`
	QuickThinkLLM string `json:"quick_think_llm"`
	BackendURL    string `json:"backend_url"`

	MaxDebateRounds      int `json:"max_debate_rounds"`
	MaxRiskDiscussRounds int `json:"max_risk_rounds"`

	OnlineTools  bool `json:"online_tools"`
	CacheEnabled bool `json:"cache_enabled"`
	Debug        bool `json:"debug"`

	// Eino graph debug server
	GraphDebugEnabled bool `json:"graph_debug_enabled"`
	GraphDebugPort    int  `json:"graph_debug_port"`

	// API credentials
	DeepSeekAPIKey      string `json:"deepseek_api_key"`
	OpenAIAPIKey        string `json:"openai_api_key"`
	FinnhubAPIKey       string `json:"finnhub_api_key"`
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	cfg := DefaultConfigWithRoot(currentDir)

	// .env values override defaults, real env vars override .env
	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

func DefaultConfigWithRoot(root string) *Config {
	return &Config{
		ProjectDir:   root,
		ResultsDir:   filepath.Join(root, "results"),
		DataDir:      filepath.Join(root, "data"),
		DataCacheDir: filepath.Join(root, "data", "cache"),

		LLMProvider:   "deepseek",
		DeepThinkLLM:  "deepseek-reasoner",
		QuickThinkLLM: "deepseek-chat",
		BackendURL:    "https://api.deepseek.com/v1",

		MaxDebateRounds:      1,
		MaxRiskDiscussRounds: 1,

		OnlineTools:  true,
		CacheEnabled: true,
		Debug:        false,

		GraphDebugEnabled: false,
		GraphDebugPort:    52538,
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("DEEP_THINK_LLM"); val != "" {
		c.DeepThinkLLM = val
	}
	if val := os.Getenv("QUICK_THINK_LLM"); val != "" {
		c.QuickThinkLLM = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("MAX_DEBATE_ROUNDS"); val != "" {
		if rounds, err := strconv.Atoi(val); err == nil && rounds > 0 {
			c.MaxDebateRounds = rounds
		}
	}
	if val := os.Getenv("MAX_RISK_ROUNDS"); val != "" {
		if rounds, err := strconv.Atoi(val); err == nil && rounds > 0 {
			c.MaxRiskDiscussRounds = rounds
		}
	}
	if val := os.Getenv("ONLINE_TOOLS"); val != "" {
		if online, err := strconv.ParseBool(val); err == nil {
			c.OnlineTools = online
		}
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if cache, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = cache
		}
	}
	if val := os.Getenv("DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Debug = debug
		}
	}
	if val := os.Getenv("GRAPH_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.GraphDebugEnabled = enabled
		}
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}
	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}
}

func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project_dir must not be empty")
	}
	if c.MaxDebateRounds < 1 {
		return fmt.Errorf("max_debate_rounds must be at least 1, got %d", c.MaxDebateRounds)
	}
	if c.MaxRiskDiscussRounds < 1 {
		return fmt.Errorf("max_risk_rounds must be at least 1, got %d", c.MaxRiskDiscussRounds)
	}
	if c.GraphDebugPort < 0 || c.GraphDebugPort > 65535 {
		return fmt.Errorf("graph_debug_port out of range: %d", c.GraphDebugPort)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.ResultsDir, c.DataDir, c.DataCacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func loadConfigFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
