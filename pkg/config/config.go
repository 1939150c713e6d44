package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

// Storage selects the backing store at startup.
type Storage struct {
	Driver string `envconfig:"DRIVER" default:"postgres"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" default:"dev-jwt-secret-change-me"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
}

// Google configures the external identity provider exchange.
type Google struct {
	UserInfoURL string        `envconfig:"USERINFO_URL" default:"https://www.googleapis.com/oauth2/v2/userinfo"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type Cors struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000,http://127.0.0.1:3000"`
}

type Log struct {
	Level  int    `envconfig:"LEVEL" default:"0"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3001"`
}

type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Server  *Server  `envconfig:"SERVER"`
	Log     *Log     `envconfig:"LOG"`
	DB      *DB      `envconfig:"DATABASE"`
	Storage *Storage `envconfig:"STORAGE"`
	Jwt     *Jwt     `envconfig:"JWT"`
	Google  *Google  `envconfig:"GOOGLE"`
	Cors    *Cors    `envconfig:"CORS"`
}

// IsProduction reports whether the deployment-mode flag is set to production.
// Cookie attributes and 500-detail suppression key off this.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}
