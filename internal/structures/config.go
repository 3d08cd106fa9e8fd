package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	MappingsPath string `yaml:"mappingsPath" validate:"required|unixPath"`
	SkipsPath    string `yaml:"skipsPath" validate:"required|unixPath"`
	Compression  string `yaml:"compression" validate:"in:none,zstd"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type ReferenceConfig struct {
	APIKey   string        `yaml:"apiKey"`
	BaseURL  string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

type ProviderConfig struct {
	BaseURL string        `yaml:"baseUrl" validate:"required|fullUrl"`
	SiteURL string        `yaml:"siteUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

type CrawlerConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Type          string        `yaml:"type" validate:"in:movie,tv"`
	Mode          string        `yaml:"mode" validate:"in:fill-gaps,resume"`
	Delay         time.Duration `yaml:"delay"`
	Backoff       time.Duration `yaml:"backoff"`
	CrashPause    time.Duration `yaml:"crashPause"`
	MinPopularity float64       `yaml:"minPopularity"`
}

type SkipConfig struct {
	AdminSecret      string `yaml:"adminSecret"`
	OutlierThreshold int    `yaml:"outlierThreshold" validate:"min:1"`
	MinTrusted       int    `yaml:"minTrusted" validate:"min:1"`
	TrustedVotes     int    `yaml:"trustedVotes" validate:"min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Reference   ReferenceConfig `yaml:"reference"`
	Provider    ProviderConfig  `yaml:"provider"`
	Crawler     CrawlerConfig   `yaml:"crawler"`
	Skip        SkipConfig      `yaml:"skip"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
