package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	RendererHTTP   = "http"
	RendererChrome = "chrome"
)

type Config struct {
	Storage     string `yaml:"storage"`
	StoragePath string `yaml:"storage_path"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`

	Renderer   string        `yaml:"renderer"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	Cookie     string        `yaml:"cookie"`
	CookieFile string        `yaml:"cookie_file"`
	Cloudflare bool          `yaml:"cloudflare"`

	Debug bool `yaml:"debug"`
}

// Options carries CLI flags. Zero values mean "not given".
type Options struct {
	IgnoreConfig bool
	Debug        bool
	Storage      string
	StoragePath  string
	Renderer     string
	UserAgent    string
	Cookie       string
	CookieFile   string
	// EnvFile is loaded with godotenv before YOMIKAZU_* variables are read.
	// Empty means ".env" in the working directory.
	EnvFile string
}

func DefaultConfig() *Config {
	return &Config{
		Storage:     "file",
		StoragePath: "",
		RedisAddr:   "localhost:6379",
		RedisPrefix: "",
		Renderer:    RendererHTTP,
		Timeout:     30 * time.Second,
		UserAgent:   "",
		Cookie:      "",
		CookieFile:  "",
		Cloudflare:  false,
		Debug:       false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadMerged resolves the effective configuration: defaults, then the active
// profile, then YOMIKAZU_* environment variables, then CLI flags. The second
// return value describes where the profile came from.
func LoadMerged(opts Options) (*Config, string, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, "", err
	}

	cfg, source, err := baseConfig(opts.IgnoreConfig)
	if err != nil {
		return nil, "", err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, "", err
	}
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, source, nil
}

func baseConfig(ignore bool) (*Config, string, error) {
	if ignore {
		return DefaultConfig(), "(ignored config)", nil
	}

	p, err := ActiveProfile()
	if errors.Is(err, ErrNoConfig) {
		return DefaultConfig(), "(default config in memory)\nRun `yomikazu config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := p.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", p.Path, err)
	}
	return cfg, p.Path, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

func applyEnv(c *Config) error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setBool := func(dst *bool, key string) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = b
		return nil
	}

	setString(&c.Storage, "YOMIKAZU_STORAGE")
	setString(&c.StoragePath, "YOMIKAZU_STORAGE_PATH")
	setString(&c.RedisAddr, "YOMIKAZU_REDIS_ADDR")
	setString(&c.RedisPrefix, "YOMIKAZU_REDIS_PREFIX")
	setString(&c.Renderer, "YOMIKAZU_RENDERER")
	setString(&c.UserAgent, "YOMIKAZU_USER_AGENT")
	setString(&c.Cookie, "YOMIKAZU_COOKIE")
	setString(&c.CookieFile, "YOMIKAZU_COOKIE_FILE")

	if v, ok := os.LookupEnv("YOMIKAZU_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid YOMIKAZU_TIMEOUT=%q: %w", v, err)
		}
		c.Timeout = d
	}

	if err := setBool(&c.Cloudflare, "YOMIKAZU_CLOUDFLARE"); err != nil {
		return err
	}
	return setBool(&c.Debug, "YOMIKAZU_DEBUG")
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Storage != "" {
		c.Storage = o.Storage
	}
	if o.StoragePath != "" {
		c.StoragePath = o.StoragePath
	}
	if o.Renderer != "" {
		c.Renderer = o.Renderer
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
}

func normalizeDefaults(c *Config) {
	if c.Storage == "" {
		c.Storage = "file"
	}
	if c.Renderer == "" {
		c.Renderer = RendererHTTP
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

func (c *Config) Print() {
	fmt.Printf(" -storage: %s\n", c.Storage)
	if c.StoragePath != "" {
		fmt.Printf(" -storage_path: %s\n", c.StoragePath)
	}
	if c.Storage == "redis" {
		fmt.Printf(" -redis_addr: %s\n", c.RedisAddr)
		if c.RedisPrefix != "" {
			fmt.Printf(" -redis_prefix: %s\n", c.RedisPrefix)
		}
	}
	fmt.Printf(" -renderer: %s\n", c.Renderer)
	fmt.Printf(" -timeout: %s\n", c.Timeout)
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.Cloudflare {
		fmt.Printf(" -cloudflare: %t\n", c.Cloudflare)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
}
