package store

import (
	"fmt"
	"net/url"
)

type Config struct {
	Host            string `mapstructure:"host" default:"localhost"`
	User            string `mapstructure:"user" default:"postgres"`
	Password        string `mapstructure:"password" default:""`
	Name            string `mapstructure:"name" default:"siphon"`
	Port            string `mapstructure:"port" default:"5432"`
	SslMode         string `mapstructure:"sslmode" default:"disable"`
	LogLevel        string `mapstructure:"log_level" default:"silent"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" default:"10"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" default:"2"`
	ApplicationName string `mapstructure:"application_name" default:"siphon"`
}

// DSN renders the config as a postgres connection URL
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SslMode)
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
