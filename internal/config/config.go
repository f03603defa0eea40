package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP            HTTPConfig    `mapstructure:"http"`
	Storage         StorageConfig `mapstructure:"storage"`
	Mongo           MongoConfig   `mapstructure:"mongo"`
	Redis           RedisConfig   `mapstructure:"redis"`
	NATS            NATSConfig    `mapstructure:"nats"`
	OAuth           OAuthConfig   `mapstructure:"oauth"`
	Feeds           FeedsConfig   `mapstructure:"feeds"`
	Banner          BannerConfig  `mapstructure:"banner"`
	AuthorizedUsers []string      `mapstructure:"authorized_users"`
}

type HTTPConfig struct {
	Port          string        `mapstructure:"port"`
	TLSCertPath   string        `mapstructure:"tls_cert_path"`
	TLSKeyPath    string        `mapstructure:"tls_key_path"`
	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
}

// StorageConfig selects the record-store backing and locates the flat files.
// Backend is "file" or "mongo"; the banner, maintenance list and action log
// always live on disk next to the announcements directory.
type StorageConfig struct {
	Backend          string `mapstructure:"backend"`
	AnnouncementsDir string `mapstructure:"announcements_dir"`
	BannerFile       string `mapstructure:"banner_file"`
	MaintenanceFile  string `mapstructure:"maintenance_file"`
	ActionLogFile    string `mapstructure:"action_log_file"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type OAuthConfig struct {
	AuthorizeURL string `mapstructure:"authorize_url"`
	TokenURL     string `mapstructure:"token_url"`
	APIBaseURL   string `mapstructure:"api_base_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// FeedsConfig points at the remote status services feeding the dashboard map.
type FeedsConfig struct {
	SiteURL       string        `mapstructure:"site_url"`
	CampusID      int           `mapstructure:"campus_id"`
	CursusID      int           `mapstructure:"cursus_id"`
	LookaheadDays int           `mapstructure:"lookahead_days"`
	Timeout       time.Duration `mapstructure:"timeout"`
	NagiosURL     string        `mapstructure:"nagios_url"`
}

type BannerConfig struct {
	DefaultVisible bool   `mapstructure:"default_visible"`
	DefaultText    string `mapstructure:"default_text"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetDefault("http.port", "8443")
	viper.SetDefault("http.session_ttl", "24h")

	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.announcements_dir", "data/announcements")
	viper.SetDefault("storage.banner_file", "data/banner.json")
	viper.SetDefault("storage.maintenance_file", "data/maintenance.json")
	viper.SetDefault("storage.action_log_file", "data/log.txt")

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "campus_monitor")
	viper.SetDefault("mongo.connect_timeout", "10s")
	viper.SetDefault("mongo.min_pool_size", 0)
	viper.SetDefault("mongo.max_pool_size", 100)

	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("nats.connect_timeout", "5s")

	viper.SetDefault("oauth.authorize_url", "https://api.intra.42.fr/oauth/authorize")
	viper.SetDefault("oauth.token_url", "https://api.intra.42.fr/oauth/token")
	viper.SetDefault("oauth.api_base_url", "https://api.intra.42.fr")

	viper.SetDefault("feeds.campus_id", 30)
	viper.SetDefault("feeds.cursus_id", 21)
	viper.SetDefault("feeds.lookahead_days", 7)
	viper.SetDefault("feeds.timeout", "5s")

	viper.SetDefault("banner.default_visible", false)
	viper.SetDefault("banner.default_text", "")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if fi, _ := os.Stat(path); !fi.IsDir() {
			viper.SetConfigFile(path)
		} else {
			viper.AddConfigPath(path)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MONITOR") // e.g. MONITOR_OAUTH_CLIENT_SECRET

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found; using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
