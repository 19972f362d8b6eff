package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string
	GinMode    string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBPath     string

	RedisAddr     string
	RedisPort     string
	RedisPassword string

	JWTSecret    string
	LedgerSecret string
	CORSOrigins  []string

	AdminEmail     string
	AdminPassword  string
	MetricsEnabled bool

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

// LoadConfig reads .env (if present) into the process environment, then an
// optional config.yaml. Environment variables override the file.
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		GinMode:    v.GetString("GIN_MODE"),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:     v.GetString("DB_HOST"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBPort:     v.GetString("DB_PORT"),
		DBPath:     v.GetString("DB_PATH"),

		RedisAddr:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		LedgerSecret: v.GetString("LEDGER_SECRET"),
		CORSOrigins:  splitList(v.GetString("CORS_ORIGINS")),

		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),

		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFilename:   v.GetString("LOG_FILENAME"),
		LogMaxSize:    v.GetInt("LOG_MAX_SIZE"),
		LogMaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		LogMaxAge:     v.GetInt("LOG_MAX_AGE"),
		LogCompress:   v.GetBool("LOG_COMPRESS"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PATH", "data/rewards.db")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,capacitor://localhost")
	v.SetDefault("METRICS_ENABLED", true)

	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FILENAME", "logs/app.log")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE", 28)
	v.SetDefault("LOG_COMPRESS", true)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
