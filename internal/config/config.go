package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string        `yaml:"env" env-default:"local"`
	DSN        string        `yaml:"dsn" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env-default:"168h"`
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	SessionKey string        `yaml:"session_key" env:"SESSION_KEY" env-default:"stayflow-backoffice"`
	HTTP       HTTPConfig    `yaml:"http"`
	Redis      RedisConf     `yaml:"redis"`
	Migrations Migrations    `yaml:"migrations"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

type Migrations struct {
	Dir  string `yaml:"dir" env-default:"internal/migrations/sql"`
	Auto bool   `yaml:"auto" env-default:"false"`
}

// MustLoad reads the YAML config named by the --config flag or the
// CONFIG_PATH env var and panics on any failure. Config is required to
// boot; there is no useful degraded mode without it.
func MustLoad() *Config {
	path := configPath()
	if path == "" {
		panic("config: no --config flag and CONFIG_PATH is unset")
	}

	if _, err := os.Stat(path); err != nil {
		panic("config: cannot stat " + path + ": " + err.Error())
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("config: " + err.Error())
	}

	return &cfg
}

func configPath() string {
	var path string
	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}
