package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug            bool   `envconfig:"debug"`
	Env              string `envconfig:"env"`
	Port             int    `envconfig:"port" default:"8080"`
	PostgresHost     string `envconfig:"postgres_host"`
	PostgresUser     string `envconfig:"postgres_user"`
	PostgresDB       string `envconfig:"postgres_db"`
	PostgresPort     int    `envconfig:"postgres_port"`
	PostgresPassword string `envconfig:"postgres_password"`
	JWTSecret        string `envconfig:"jwt_secret"`
	JWTExpiryHours   int    `envconfig:"jwt_expiry_hours" default:"24"`
	BaseUrl          string `envconfig:"base_url"`
	MailgunApiKey    string `envconfig:"mg_api_key"`
	MgDomain         string `envconfig:"mg_domain"`
	MgEmailFrom      string `envconfig:"email_from"`
	LogLevel         string `envconfig:"log_level" default:"info"`
	LogFormat        string `envconfig:"log_format" default:"text"`
	ReportPoints     int    `envconfig:"report_points" default:"10"`
	CollectPoints    int    `envconfig:"collect_points" default:"20"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("wastetrack", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
