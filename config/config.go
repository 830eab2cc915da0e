package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Auth      AuthConfigs     `toml:"auth"`
	Token     TokenConfigs    `toml:"token"`
	Redis     RedisConfigs    `toml:"redis"`
	Content   ContentConfigs  `toml:"content"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`

	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

type AuthConfigs struct {
	AccessTokenName string `toml:"access_token_name"`
}

type TokenConfigs struct {
	Secret     string        `toml:"secret"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type ContentConfigs struct {
	SummaryLength    int `toml:"summary_length"`
	MaxPollChoices   int `toml:"max_poll_choices"`
	TrendingSize     int `toml:"trending_size"`
	MaxContentLength int `toml:"max_content_length"`
}

// Load reads configs from the TOML file at path, then applies environment
// overrides for values that differ between deployments.
func Load(path string) (*Configs, error) {
	configs := defaultConfigs()
	if path != "" {
		if _, err := toml.DecodeFile(path, configs); err != nil {
			return nil, err
		}
	}

	if v, ok := os.LookupEnv("DB_HOST"); ok {
		configs.Database.Host = v
	}

	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		configs.Database.Password = v
	}

	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		configs.Redis.Addr = v
	}

	if v, ok := os.LookupEnv("TOKEN_SECRET"); ok {
		configs.Token.Secret = v
	}

	if v, ok := os.LookupEnv("PORT"); ok {
		configs.ApiServer.Port = v
	}

	return configs, nil
}

func defaultConfigs() *Configs {
	return &Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "forumix",
			User:     "forumix",
		},
		ApiServer: ServerConfigs{
			Host:         "localhost",
			Port:         "8080",
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: AuthConfigs{
			AccessTokenName: "access_token",
		},
		Token: TokenConfigs{
			Secret:     "token-secret",
			Expiration: 7 * 24 * time.Hour,
		},
		Redis: RedisConfigs{
			Addr: "localhost:6379",
		},
		Content: ContentConfigs{
			SummaryLength:    200,
			MaxPollChoices:   8,
			TrendingSize:     10,
			MaxContentLength: 50000,
		},
	}
}
