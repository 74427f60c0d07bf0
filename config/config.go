package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const DefaultConfigFile = "./config/config.yaml"

type OpenAI struct {
	APIKey            string  `mapstructure:"apiKey"`
	Model             string  `mapstructure:"model"`
	BaseURL           string  `mapstructure:"baseURL"`
	Temperature       float64 `mapstructure:"temperature"`
	MaxTokens         int     `mapstructure:"maxTokens"`
	FollowUpMaxTokens int     `mapstructure:"followUpMaxTokens"`
}

func (o OpenAI) Enabled() bool {
	return o.APIKey != ""
}

type Nats struct {
	Enabled     bool   `mapstructure:"enabled"`
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	Stream      string `mapstructure:"stream"`
	CartSubject string `mapstructure:"cartSubject"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

type Watcher struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Transcripts struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type Menu struct {
	Path string `mapstructure:"path"`
}

type Chat struct {
	MaxHistory int `mapstructure:"maxHistory"`
}

type Server struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Config struct {
	Server      Server      `mapstructure:"server"`
	Menu        Menu        `mapstructure:"menu"`
	OpenAI      OpenAI      `mapstructure:"openai"`
	Chat        Chat        `mapstructure:"chat"`
	Transcripts Transcripts `mapstructure:"transcripts"`
	Nats        Nats        `mapstructure:"nats"`
	Watcher     Watcher     `mapstructure:"watcher"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("menu.path", "restaurant-config.json")
	v.SetDefault("openai.apiKey", "")
	v.SetDefault("openai.model", "gpt-4-turbo-preview")
	v.SetDefault("openai.baseURL", "")
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.maxTokens", 500)
	v.SetDefault("openai.followUpMaxTokens", 300)
	v.SetDefault("chat.maxHistory", 20)
	v.SetDefault("transcripts.enabled", false)
	v.SetDefault("transcripts.path", "chat_history.db")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.host", "localhost")
	v.SetDefault("nats.port", "4222")
	v.SetDefault("nats.stream", "ORDERS")
	v.SetDefault("nats.cartSubject", "orders.cart")
	v.SetDefault("watcher.workers", 2)
	v.SetDefault("watcher.queueSize", 100)
}

// LoadConfig reads the yaml file at path (a missing file is not an error) and
// applies environment overrides, e.g. OPENAI_APIKEY or SERVER_PORT.
// OPENAI_API_KEY is honoured as well.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("openai.apiKey", "OPENAI_APIKEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind openai api key: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &config, nil
}
