package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "NEWSDIGEST_CONFIG"
	newsAPIKeyEnv  = "NEWS_API_KEY"
	stockAPIKeyEnv = "STOCK_API_KEY"
	ollamaURLEnv   = "OLLAMA_URL"
	ollamaModelEnv = "OLLAMA_MODEL"
	emailUserEnv   = "EMAIL_USER"
	emailPassEnv   = "EMAIL_PASS"
	emailToEnv     = "EMAIL_TO"
	logLevelEnv    = "NEWSDIGEST_LOG_LEVEL"
)

// Config holds all settings required across the application. It is passed
// into agents explicitly; there are no process-wide globals.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Limits   LimitsConfig   `yaml:"limits"`
	NewsAPI  NewsAPIConfig  `yaml:"newsapi"`
	Stock    StockConfig    `yaml:"stock"`
	LLM      LLMConfig      `yaml:"llm"`
	Email    EmailConfig    `yaml:"email"`
	Digest   DigestConfig   `yaml:"digest"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LimitsConfig caps article counts at each pipeline stage.
type LimitsConfig struct {
	MaxNewsAPI    int `yaml:"maxNewsapi"`
	MaxRSS        int `yaml:"maxRss"`
	FinalArticles int `yaml:"finalArticles"`
}

// NewsAPIConfig describes the NewsAPI endpoint and credentials.
type NewsAPIConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// StockConfig wires the stock price lookup used by the finance agent.
type StockConfig struct {
	QuoteURL   string `yaml:"quoteUrl"`
	APIKey     string `yaml:"apiKey"`
	SymbolsCSV string `yaml:"symbolsCsv"`
}

// LLMConfig points at the local chat-completion inference service.
type LLMConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// EmailConfig carries SMTP credentials for the scheduled digest mail.
type EmailConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	To   string `yaml:"to"`
}

// DigestConfig defines how often the serve mode produces a digest.
type DigestConfig struct {
	IntervalMinutes int `yaml:"intervalMinutes"`
}

// FeedsConfig lists the RSS sources per domain.
type FeedsConfig struct {
	Finance    []string `yaml:"finance"`
	Technology []string `yaml:"technology"`
	Cricket    []string `yaml:"cricket"`
	Football   []string `yaml:"football"`
}

// DefaultsConfig supplies domain parameters for scheduled runs, where no
// interactive form is available.
type DefaultsConfig struct {
	Stock  string `yaml:"stock"`
	Sector string `yaml:"sector"`
	Topic  string `yaml:"topic"`
	Team   string `yaml:"team"`
	Sport  string `yaml:"sport"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.clampLimits()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.NewsAPI.APIKey = v
	}

	if v := os.Getenv(stockAPIKeyEnv); v != "" {
		c.Stock.APIKey = v
	}

	if v := os.Getenv(ollamaURLEnv); v != "" {
		c.LLM.Endpoint = v
	}

	if v := os.Getenv(ollamaModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(emailUserEnv); v != "" {
		c.Email.User = v
	}

	if v := os.Getenv(emailPassEnv); v != "" {
		c.Email.Pass = v
	}

	if v := os.Getenv(emailToEnv); v != "" {
		c.Email.To = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

// clampLimits keeps misconfigured counts from disabling a stage entirely.
func (c *Config) clampLimits() {
	def := defaultConfig().Limits
	if c.Limits.MaxNewsAPI <= 0 {
		c.Limits.MaxNewsAPI = def.MaxNewsAPI
	}
	if c.Limits.MaxRSS <= 0 {
		c.Limits.MaxRSS = def.MaxRSS
	}
	if c.Limits.FinalArticles <= 0 {
		c.Limits.FinalArticles = def.FinalArticles
	}
	if c.Digest.IntervalMinutes <= 0 {
		c.Digest.IntervalMinutes = defaultConfig().Digest.IntervalMinutes
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Limits.MaxNewsAPI > 0 {
		base.Limits.MaxNewsAPI = override.Limits.MaxNewsAPI
	}
	if override.Limits.MaxRSS > 0 {
		base.Limits.MaxRSS = override.Limits.MaxRSS
	}
	if override.Limits.FinalArticles > 0 {
		base.Limits.FinalArticles = override.Limits.FinalArticles
	}

	if override.NewsAPI.BaseURL != "" {
		base.NewsAPI.BaseURL = override.NewsAPI.BaseURL
	}
	if override.NewsAPI.APIKey != "" {
		base.NewsAPI.APIKey = override.NewsAPI.APIKey
	}

	if override.Stock.QuoteURL != "" {
		base.Stock.QuoteURL = override.Stock.QuoteURL
	}
	if override.Stock.APIKey != "" {
		base.Stock.APIKey = override.Stock.APIKey
	}
	if override.Stock.SymbolsCSV != "" {
		base.Stock.SymbolsCSV = override.Stock.SymbolsCSV
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}

	if override.Email.Host != "" {
		base.Email.Host = override.Email.Host
	}
	if override.Email.Port != 0 {
		base.Email.Port = override.Email.Port
	}
	if override.Email.User != "" {
		base.Email.User = override.Email.User
	}
	if override.Email.Pass != "" {
		base.Email.Pass = override.Email.Pass
	}
	if override.Email.To != "" {
		base.Email.To = override.Email.To
	}

	if override.Digest.IntervalMinutes > 0 {
		base.Digest.IntervalMinutes = override.Digest.IntervalMinutes
	}

	if len(override.Feeds.Finance) > 0 {
		base.Feeds.Finance = override.Feeds.Finance
	}
	if len(override.Feeds.Technology) > 0 {
		base.Feeds.Technology = override.Feeds.Technology
	}
	if len(override.Feeds.Cricket) > 0 {
		base.Feeds.Cricket = override.Feeds.Cricket
	}
	if len(override.Feeds.Football) > 0 {
		base.Feeds.Football = override.Feeds.Football
	}

	if override.Defaults.Stock != "" {
		base.Defaults.Stock = override.Defaults.Stock
	}
	if override.Defaults.Sector != "" {
		base.Defaults.Sector = override.Defaults.Sector
	}
	if override.Defaults.Topic != "" {
		base.Defaults.Topic = override.Defaults.Topic
	}
	if override.Defaults.Team != "" {
		base.Defaults.Team = override.Defaults.Team
	}
	if override.Defaults.Sport != "" {
		base.Defaults.Sport = override.Defaults.Sport
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Limits: LimitsConfig{
			MaxNewsAPI:    10,
			MaxRSS:        10,
			FinalArticles: 5,
		},
		NewsAPI: NewsAPIConfig{BaseURL: "https://newsapi.org"},
		Stock: StockConfig{
			QuoteURL:   "https://api.api-ninjas.com/v1/stockprice",
			SymbolsCSV: "nse_symbols.csv",
		},
		LLM: LLMConfig{
			Endpoint: "http://localhost:11434/api/chat",
			Model:    "llama3.1:8b",
		},
		Email:  EmailConfig{Host: "smtp.gmail.com", Port: 587},
		Digest: DigestConfig{IntervalMinutes: 10},
		Feeds: FeedsConfig{
			Finance:    []string{"https://www.moneycontrol.com/rss/latestnews.xml"},
			Technology: []string{"https://www.wired.com/feed/rss"},
			Cricket:    []string{"https://www.espncricinfo.com/rss/content/story/feeds/0.xml"},
			Football: []string{
				"https://www.espn.com/espn/rss/soccer/news",
				"https://www.goal.com/feeds/news",
			},
		},
		Defaults: DefaultsConfig{
			Stock:  "Infosys",
			Sector: "Technology",
			Topic:  "Artificial Intelligence",
			Team:   "Australia",
			Sport:  "Cricket",
		},
	}
}
