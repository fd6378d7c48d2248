package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/danielhkuo/folio/capability"
	"github.com/danielhkuo/folio/db"
	"github.com/danielhkuo/folio/i18n"
)

type Config struct {
	Port         int    `toml:"port" env:"PORT"`
	DatabaseURL  string `toml:"database_url" env:"DATABASE_URL"`
	DatabaseType string `toml:"database_type" env:"DATABASE_TYPE"`
	AdminKeySalt string `toml:"admin_key_salt" env:"ADMIN_KEY_SALT"`

	// TemplatesDir holds YAML template definitions layered over the built-ins.
	TemplatesDir   string `toml:"templates_dir" env:"TEMPLATES_DIR"`
	WatchTemplates bool   `toml:"watch_templates" env:"WATCH_TEMPLATES"`

	StrictCapabilityTypes bool   `toml:"strict_capability_types" env:"STRICT_CAPABILITY_TYPES"`
	UnknownParams         string `toml:"unknown_params" env:"UNKNOWN_CAPABILITY_PARAMS"`
	RenderConcurrency     int    `toml:"render_concurrency" env:"RENDER_CONCURRENCY"`

	DefaultLocale string   `toml:"default_locale" env:"DEFAULT_LOCALE"`
	CORSOrigins   []string `toml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

// Defaults returns the configuration used before any file, env or flag is applied.
func Defaults() Config {
	return Config{
		Port:                  3318,
		DatabaseType:          string(db.SQLite),
		StrictCapabilityTypes: true,
		UnknownParams:         string(capability.UnknownReject),
		RenderConcurrency:     4,
		DefaultLocale:         "en",
		CORSOrigins:           []string{"*"},
	}
}

// Load layers an optional TOML file, an optional .env file and the
// environment over Defaults. Missing files are skipped.
func Load(configPath, envFile string) (Config, error) {
	cfg := Defaults()

	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ParseFlags validates flags and builds the server configuration.
// Flags override the environment, which overrides the config file.
func ParseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("folio", flag.ContinueOnError)

	var (
		configPath = fs.String("c", os.Getenv("FOLIO_CONFIG"), "TOML config file")
		envFile    = fs.String("env-file", ".env", "dotenv file loaded into the environment")

		port          = fs.Int("p", 0, "Server port")
		databaseURL   = fs.String("d", "", "Database URL")
		databaseType  = fs.String("t", "", "Database type (sqlite or postgres)")
		adminSalt     = fs.String("admin-salt", "", "Admin key salt (prefer env)")
		templatesDir  = fs.String("templates", "", "Template override directory")
		watch         = fs.Bool("watch", false, "Reload templates when the override directory changes")
		strict        = fs.Bool("strict", true, "Reject capability params of the wrong type instead of coercing")
		unknownParams = fs.String("unknown-params", "", "Unknown capability param policy (reject or drop)")
		concurrency   = fs.Int("concurrency", 0, "Sections resolved in parallel per page")
		locale        = fs.String("locale", "", "Default content locale")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*configPath, *envFile)
	if err != nil {
		return Config{}, err
	}

	// Only flags given on the command line win over file and env.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = *port
		case "d":
			cfg.DatabaseURL = *databaseURL
		case "t":
			cfg.DatabaseType = *databaseType
		case "admin-salt":
			cfg.AdminKeySalt = *adminSalt
		case "templates":
			cfg.TemplatesDir = *templatesDir
		case "watch":
			cfg.WatchTemplates = *watch
		case "strict":
			cfg.StrictCapabilityTypes = *strict
		case "unknown-params":
			cfg.UnknownParams = *unknownParams
		case "concurrency":
			cfg.RenderConcurrency = *concurrency
		case "locale":
			cfg.DefaultLocale = *locale
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings and enumerated values.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if _, err := db.ParseDialect(c.DatabaseType); err != nil {
		return err
	}
	if c.AdminKeySalt == "" {
		return errors.New("ADMIN_KEY_SALT required")
	}
	if _, err := capability.ParseUnknownParamPolicy(c.UnknownParams); err != nil {
		return err
	}
	if c.RenderConcurrency < 1 {
		return fmt.Errorf("render concurrency must be at least 1, got %d", c.RenderConcurrency)
	}
	if _, ok := i18n.ParseTag(c.DefaultLocale); !ok {
		return fmt.Errorf("unsupported default locale %q", c.DefaultLocale)
	}
	if c.WatchTemplates && strings.TrimSpace(c.TemplatesDir) == "" {
		return errors.New("template watching needs a templates directory")
	}
	return nil
}

// Dialect returns the parsed database type. Call after Validate.
func (c Config) Dialect() db.Dialect {
	d, _ := db.ParseDialect(c.DatabaseType)
	return d
}

// UnknownParamPolicy returns the parsed policy. Call after Validate.
func (c Config) UnknownParamPolicy() capability.UnknownParamPolicy {
	p, _ := capability.ParseUnknownParamPolicy(c.UnknownParams)
	return p
}

// Locale returns the default content locale. Call after Validate.
func (c Config) Locale() language.Tag {
	tag, ok := i18n.ParseTag(c.DefaultLocale)
	if !ok {
		return i18n.Default()
	}
	return tag
}
