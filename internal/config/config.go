package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Distance DistanceConfig `yaml:"distance" mapstructure:"distance"`
	Geocode  GeocodeConfig  `yaml:"geocode" mapstructure:"geocode"`
	Corridor CorridorConfig `yaml:"corridor" mapstructure:"corridor"`
	Advisor  AdvisorConfig  `yaml:"advisor" mapstructure:"advisor"`
	Notion   NotionConfig   `yaml:"notion" mapstructure:"notion"`
	Refdata  RefdataConfig  `yaml:"refdata" mapstructure:"refdata"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the zone repository backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// DistanceConfig configures the distance provider chain.
type DistanceConfig struct {
	Provider     string `yaml:"provider" mapstructure:"provider"`
	GoogleAPIKey string `yaml:"google_api_key" mapstructure:"google_api_key"`
	Mode         string `yaml:"mode" mapstructure:"mode"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// GeocodeConfig configures free-text location resolution.
type GeocodeConfig struct {
	GoogleAPIKey string `yaml:"google_api_key" mapstructure:"google_api_key"`
	Region       string `yaml:"region" mapstructure:"region"`
}

// Key returns the geocoding API key, falling back to the distance key so a
// single Google credential can serve both services.
func (g GeocodeConfig) Key(distanceKey string) string {
	if g.GoogleAPIKey != "" {
		return g.GoogleAPIKey
	}
	return distanceKey
}

// CorridorConfig holds corridor search defaults.
type CorridorConfig struct {
	WidthKm          float64 `yaml:"width_km" mapstructure:"width_km"`
	MinSecurityScore float64 `yaml:"min_security_score" mapstructure:"min_security_score"`
	MaxFloodRisk     float64 `yaml:"max_flood_risk" mapstructure:"max_flood_risk"`
}

// AdvisorConfig holds Anthropic API settings for investment briefs.
type AdvisorConfig struct {
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NotionConfig holds Notion API credentials and the assessment database ID.
type NotionConfig struct {
	Token        string `yaml:"token" mapstructure:"token"`
	AssessmentDB string `yaml:"assessment_db" mapstructure:"assessment_db"`
}

// RefdataConfig configures reference-data snapshot fetching.
type RefdataConfig struct {
	MirrorURL string `yaml:"mirror_url" mapstructure:"mirror_url"`
	TempDir   string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// ServerConfig configures the JSON API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CorsOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NAIJA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "json")
	v.SetDefault("store.path", "data/zones.json")
	v.SetDefault("distance.provider", "haversine")
	v.SetDefault("distance.mode", "driving")
	v.SetDefault("distance.timeout_secs", 15)
	v.SetDefault("geocode.region", "ng")
	v.SetDefault("corridor.width_km", 5.0)
	v.SetDefault("corridor.min_security_score", 50.0)
	v.SetDefault("corridor.max_flood_risk", 70.0)
	v.SetDefault("advisor.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("advisor.max_tokens", 1024)
	v.SetDefault("refdata.temp_dir", "/tmp/naijaprop")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given run mode. Shared settings
// (store backend, corridor defaults, distance provider) are checked for every
// mode; mode-specific settings only when the mode needs them.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "json", "yaml":
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required for file-backed stores")
		}
	case "sqlite", "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for driver "+c.Store.Driver)
		}
	default:
		problems = append(problems, "store.driver must be one of json, yaml, sqlite, postgres")
	}

	if c.Corridor.WidthKm <= 0 {
		problems = append(problems, "corridor.width_km must be > 0")
	}
	if c.Corridor.MinSecurityScore < 0 || c.Corridor.MinSecurityScore > 100 {
		problems = append(problems, "corridor.min_security_score must be between 0 and 100")
	}
	if c.Corridor.MaxFloodRisk < 0 || c.Corridor.MaxFloodRisk > 100 {
		problems = append(problems, "corridor.max_flood_risk must be between 0 and 100")
	}

	switch c.Distance.Provider {
	case "haversine":
	case "google":
		if c.Distance.GoogleAPIKey == "" {
			problems = append(problems, "distance.google_api_key is required for the google provider")
		}
	default:
		problems = append(problems, "distance.provider must be haversine or google")
	}
	if c.Distance.TimeoutSecs <= 0 {
		problems = append(problems, "distance.timeout_secs must be > 0")
	}

	switch mode {
	case "cli":
		// shared checks only
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "notion":
		if c.Notion.Token == "" {
			problems = append(problems, "notion.token is required")
		}
		if c.Notion.AssessmentDB == "" {
			problems = append(problems, "notion.assessment_db is required")
		}
	case "refdata":
		if c.Refdata.MirrorURL == "" {
			problems = append(problems, "refdata.mirror_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: invalid configuration:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
