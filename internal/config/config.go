package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Log          LogConfig
	Mapbox       MapboxConfig
	RadioBrowser RadioBrowserConfig
	Geocoding    GeocodingConfig
	Worker       WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	// TTL кеша результатов геокодирования
	GeocodeCacheTTL time.Duration
	// TTL кеша уже обработанных станций
	ProcessedCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// MapboxConfig - настройки геокодера. Пустой AccessToken переводит
// геокодер в режим статической таблицы центроидов стран.
type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout int
}

type RadioBrowserConfig struct {
	BaseURL        string
	RequestTimeout int
	PageSize       int
}

// GeocodingConfig - настройки батч-пайплайна геокодирования
type GeocodingConfig struct {
	BatchSize         int
	StationDelay      time.Duration
	MaxCallsPerMinute int
	SeedFile          string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	RunOnStartup      bool
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env опционален - все параметры доступны из окружения
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL:   time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
			ProcessedCacheTTL: time.Duration(viper.GetInt("PROCESSED_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		RadioBrowser: RadioBrowserConfig{
			BaseURL:        viper.GetString("RADIO_BROWSER_BASE_URL"),
			RequestTimeout: viper.GetInt("RADIO_BROWSER_REQUEST_TIMEOUT"),
			PageSize:       viper.GetInt("RADIO_BROWSER_PAGE_SIZE"),
		},
		Geocoding: GeocodingConfig{
			BatchSize:         viper.GetInt("GEOCODE_BATCH_SIZE"),
			StationDelay:      time.Duration(viper.GetInt("GEOCODE_STATION_DELAY_MS")) * time.Millisecond,
			MaxCallsPerMinute: viper.GetInt("GEOCODE_MAX_CALLS_PER_MINUTE"),
			SeedFile:          viper.GetString("GEOCODE_SEED_FILE"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			RunOnStartup:      viper.GetBool("WORKER_RUN_ON_STARTUP"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.ProcessedCacheTTL == 0 {
		cfg.Cache.ProcessedCacheTTL = 7 * 24 * time.Hour
	}
	if cfg.Mapbox.BaseURL == "" {
		cfg.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Mapbox.RequestTimeout == 0 {
		cfg.Mapbox.RequestTimeout = 10
	}
	if cfg.RadioBrowser.BaseURL == "" {
		cfg.RadioBrowser.BaseURL = "http://all.api.radio-browser.info/json"
	}
	if cfg.RadioBrowser.RequestTimeout == 0 {
		cfg.RadioBrowser.RequestTimeout = 30
	}
	if cfg.RadioBrowser.PageSize == 0 {
		cfg.RadioBrowser.PageSize = 10000
	}
	if cfg.Geocoding.BatchSize == 0 {
		cfg.Geocoding.BatchSize = 10
	}
	if cfg.Geocoding.StationDelay == 0 {
		cfg.Geocoding.StationDelay = 100 * time.Millisecond
	}
	if cfg.Geocoding.MaxCallsPerMinute == 0 {
		cfg.Geocoding.MaxCallsPerMinute = 300
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "station-geocoding-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
