package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/goban-backend/internal/apperror"
	"github.com/rocketscienceinc/goban-backend/internal/entity"
	"github.com/rocketscienceinc/goban-backend/internal/goban"
)

const (
	ModeHost = "host"
	ModeJoin = "join"
)

var (
	ErrUnknownMode     = errors.New("unknown peer mode")
	ErrInvalidKoWindow = errors.New("invalid ko window")
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Board      Board  `yaml:"board"`
	Peer       Peer   `yaml:"peer"`
	Redis      Redis  `yaml:"redis"`
}

type Board struct {
	Width    int `yaml:"width" env:"BOARD_WIDTH" env-default:"19"`
	Height   int `yaml:"height" env:"BOARD_HEIGHT" env-default:"19"`
	KoWindow int `yaml:"ko-window" env:"BOARD_KO_WINDOW" env-default:"20"`
}

type Peer struct {
	Mode        string        `yaml:"mode" env:"PEER_MODE" env-default:"host"`
	Host        string        `yaml:"host" env:"PEER_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"PEER_PORT" env-default:"8642"`
	DialTimeout time.Duration `yaml:"dial-timeout" env:"PEER_DIAL_TIMEOUT" env-default:"1m"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path, falling back to environment variables and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Peer.Mode != ModeHost && that.Peer.Mode != ModeJoin {
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Peer.Mode)
	}

	if that.Board.Width <= 0 || that.Board.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", apperror.ErrInvalidDimensions, that.Board.Width, that.Board.Height)
	}

	if that.Board.KoWindow < 1 || that.Board.KoWindow > goban.MaxKoWindow {
		return fmt.Errorf("%w: %d, want 1..%d", ErrInvalidKoWindow, that.Board.KoWindow, goban.MaxKoWindow)
	}

	return nil
}

// LocalColor is the color played by this side: the host plays black.
func (that *Peer) LocalColor() entity.Color {
	if that.Mode == ModeJoin {
		return entity.White
	}

	return entity.Black
}

func (that *Peer) GetPeerAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}

func (that *Peer) GetListenAddr() string {
	return net.JoinHostPort("", that.Port)
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
