package configs

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type Config struct {
	Viper *viper.Viper
}

// GetConfig loads the configuration once. An empty path searches ./config.yaml and
// ./configs/config.yaml; a missing file is not an error.
func GetConfig(path string) *Config {
	once.Do(func() {
		config = Load(path)
	})
	return config
}

func Load(path string) *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("SPACEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("could not read config file, using defaults", "error", err)
		}
	} else {
		slog.Info("config file loaded", "file", v.ConfigFileUsed())
	}

	return &Config{Viper: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("docs.enabled", true)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "space_hub")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.dsn", "space_hub.db")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_time", 86400)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local.dir", "uploads")
	v.SetDefault("storage.minio.bucket", "space-hub-documents")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("upload.max_bytes", 10<<20)

	v.SetDefault("whiteboard.rate_limit", 20)
	v.SetDefault("whiteboard.burst", 30)
}
