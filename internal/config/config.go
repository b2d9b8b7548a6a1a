package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "Europe/London"
	fallbackTimezone = "UTC"
	configPathEnv    = "MENU_SCANNER_CONFIG"
	listenEnv        = "MENU_SCANNER_LISTEN"
	cachePathEnv     = "MENU_SCANNER_CACHE_PATH"
	logLevelEnv      = "MENU_SCANNER_LOG_LEVEL"
	timezoneEnv      = "MENU_SCANNER_TIMEZONE"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"

	// DefaultUserAgent identifies the service to the catering site.
	DefaultUserAgent = "cranbrook-catering-api/0.1"

	EnginePDFToText = "pdftotext"
	EngineNative    = "native"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Extract   ExtractConfig   `yaml:"extract"`
	Cache     CacheConfig     `yaml:"cache"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Parser    ParserConfig    `yaml:"parser"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Sites     []SiteConfig    `yaml:"sites"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Listen      string `yaml:"listen"`
	AllowOrigin string `yaml:"allowOrigin"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FetchConfig applies to both the catering page and document downloads.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"userAgent"`
	Concurrency int           `yaml:"concurrency"`
}

// ExtractConfig selects the PDF to text engine.
type ExtractConfig struct {
	Engine string `yaml:"engine"`
	Binary string `yaml:"binary"`
}

// CacheConfig points at the SQLite text cache. An empty path disables it.
type CacheConfig struct {
	Path string        `yaml:"path"`
	TTL  time.Duration `yaml:"ttl"`
}

// SchedulerConfig defines how often the index is rebuilt and which
// timezone decides what "today" is.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return time.UTC
}

// ParserConfig tunes the line classifier.
type ParserConfig struct {
	NoiseKeywords []string `yaml:"noiseKeywords"`
}

// TelegramConfig enables the bot front end when BotToken is set. WebhookURL,
// when present, is registered with Telegram at startup.
type TelegramConfig struct {
	BotToken       string  `yaml:"botToken"`
	WebhookURL     string  `yaml:"webhookUrl"`
	WebhookPath    string  `yaml:"webhookPath"`
	AllowedChatIDs []int64 `yaml:"allowedChatIds"`
}

// Enabled reports whether a bot token was configured.
func (t TelegramConfig) Enabled() bool {
	return strings.TrimSpace(t.BotToken) != ""
}

// SiteConfig describes a single site with its scanner strategy.
type SiteConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	PageURL string            `yaml:"pageUrl"`
	BaseURL string            `yaml:"baseUrl"`
	Options map[string]string `yaml:"options"`
}

// Load reads YAML configuration from MENU_SCANNER_CONFIG (if set) and applies
// environment overrides.
func Load() Config {
	return LoadFile(os.Getenv(configPathEnv))
}

// LoadFile is Load with an explicit file path. An empty path means defaults
// plus environment only.
func LoadFile(path string) Config {
	cfg := defaultConfig()

	if path != "" {
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
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(listenEnv); v != "" {
		c.Server.Listen = v
	}

	if v := os.Getenv(cachePathEnv); v != "" {
		c.Cache.Path = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(timezoneEnv); v != "" {
		c.Scheduler.Timezone = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, fallbackTimezone)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Server.Listen != "" {
		base.Server.Listen = override.Server.Listen
	}
	if override.Server.AllowOrigin != "" {
		base.Server.AllowOrigin = override.Server.AllowOrigin
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Fetch.Timeout > 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}
	if override.Fetch.Concurrency > 0 {
		base.Fetch.Concurrency = override.Fetch.Concurrency
	}

	if override.Extract.Engine != "" {
		base.Extract.Engine = override.Extract.Engine
	}
	if override.Extract.Binary != "" {
		base.Extract.Binary = override.Extract.Binary
	}

	if override.Cache.Path != "" {
		base.Cache.Path = override.Cache.Path
	}
	if override.Cache.TTL > 0 {
		base.Cache.TTL = override.Cache.TTL
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if len(override.Parser.NoiseKeywords) > 0 {
		base.Parser.NoiseKeywords = override.Parser.NoiseKeywords
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.WebhookURL != "" {
		base.Telegram.WebhookURL = override.Telegram.WebhookURL
	}
	if override.Telegram.WebhookPath != "" {
		base.Telegram.WebhookPath = override.Telegram.WebhookPath
	}
	if len(override.Telegram.AllowedChatIDs) > 0 {
		base.Telegram.AllowedChatIDs = override.Telegram.AllowedChatIDs
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server:  ServerConfig{Listen: ":3000", AllowOrigin: "*"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Fetch: FetchConfig{
			Timeout:     20 * time.Second,
			UserAgent:   DefaultUserAgent,
			Concurrency: 4,
		},
		Extract:   ExtractConfig{Engine: EnginePDFToText, Binary: "pdftotext"},
		Cache:     CacheConfig{Path: "", TTL: 12 * time.Hour},
		Scheduler: SchedulerConfig{Interval: time.Hour, Timezone: defaultTimezone},
		Telegram:  TelegramConfig{WebhookPath: "/telegram/webhook"},
		Sites: []SiteConfig{
			{
				Name:    "cranbrook",
				Scanner: "catering",
				PageURL: "https://www.cranbrookschool.co.uk/school-information/cranbrook-catering/",
				BaseURL: "https://www.cranbrookschool.co.uk/",
			},
		},
	}
}
