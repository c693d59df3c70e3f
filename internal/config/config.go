package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config carries everything the client needs to reach the scheduling
// service and identify the member it acts for.
type Config struct {
	BaseURL   string `mapstructure:"API_BASE_URL" validate:"required,url"`
	MemberID  string `mapstructure:"MEMBER_ID" validate:"required"`
	UserGroup string `mapstructure:"USER_GROUP" validate:"required,oneof=member front_desk"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFile   string `mapstructure:"LOG_FILE"`
}

// Load reads configuration from a local .env file and the environment,
// prefixed CLASSDESK_. A missing .env file is fine; defaults point at a
// local development backend.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.SetEnvPrefix("CLASSDESK")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("API_BASE_URL", "http://127.0.0.1:8000")
	v.SetDefault("MEMBER_ID", "demo_member")
	v.SetDefault("USER_GROUP", "member")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "classdesk.log")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
