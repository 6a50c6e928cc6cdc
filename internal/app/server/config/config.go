package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = "localhost:8080"
	defaultLogLevel   = "info"
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Logger  logger
	Growatt growatt
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type growatt struct {
	BaseURL string `env:"GROWATT_API_URL"`
}

// MustLoad reads the server configuration from the environment, with an
// optional .env file for local runs. The AES field-encryption key is not part
// of this struct on purpose: the crypto package reads it lazily at first use.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("log_level", defaultLogLevel)
	viper.SetDefault("app_env", EnvProd)
	viper.SetDefault("migrations_path", "migrations")

	return &Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Logger: logger{LogLevel: viper.GetString("log_level")},
		Growatt: growatt{
			BaseURL: viper.GetString("growatt_api_url"),
		},
	}
}
