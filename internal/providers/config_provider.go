package providers

import (
	"flixmap/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)
	v.SetDefault("persistence.mappingsPath", "data/mappings.json")
	v.SetDefault("persistence.skipsPath", "data/skips.json")
	v.SetDefault("persistence.compression", "none")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "logs")
	v.SetDefault("reference.baseUrl", "https://api.themoviedb.org/3")
	v.SetDefault("reference.language", "en-US")
	v.SetDefault("reference.timeout", 10*time.Second)
	v.SetDefault("reference.cacheTTL", 10*time.Minute)
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("crawler.delay", 1200*time.Millisecond)
	v.SetDefault("crawler.backoff", 5*time.Second)
	v.SetDefault("crawler.crashPause", 2*time.Second)
	v.SetDefault("crawler.minPopularity", 0.6)
	v.SetDefault("skip.outlierThreshold", 30)
	v.SetDefault("skip.minTrusted", 3)
	v.SetDefault("skip.trustedVotes", 3)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 16)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	_ = v.BindEnv("logger.level", "FLIXMAP_LOG_LEVEL")
	_ = v.BindEnv("reference.apiKey", "TMDB_API_KEY")
	_ = v.BindEnv("provider.baseUrl", "FLIXMAP_PROVIDER_URL")
	_ = v.BindEnv("provider.siteUrl", "FLIXMAP_SITE_URL")
	_ = v.BindEnv("skip.adminSecret", "FLIXMAP_ADMIN_SECRET")
	_ = v.BindEnv("crawler.enabled", "FLIXMAP_CRAWLER_ENABLED")
	_ = v.BindEnv("cache.enabled", "FLIXMAP_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "FLIXMAP_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FlixMap"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
