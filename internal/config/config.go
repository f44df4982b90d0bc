package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/designboard/internal/domain/activity"
	"github.com/rpggio/designboard/internal/domain/proposal"
)

const envPrefix = "DESIGNBOARD_"

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
	Seed      SeedConfig      `yaml:"seed"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type TransportConfig struct {
	// Mode is "stdio" or "http".
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SeedConfig struct {
	// Path to a seed document. Empty uses the built-in board.
	Path string `yaml:"path"`
}

type WorkflowConfig struct {
	ApprovalDelay  time.Duration  `yaml:"approval_delay"`
	PreviewBaseURL string         `yaml:"preview_base_url"`
	Actor          activity.Actor `yaml:"actor"`
	Approver       activity.Actor `yaml:"approver"`
}

// Proposal converts the workflow section into proposal settings.
func (w WorkflowConfig) Proposal() proposal.Config {
	return proposal.Config{
		ApprovalDelay:  w.ApprovalDelay,
		PreviewBaseURL: w.PreviewBaseURL,
		Actor:          w.Actor,
		Approver:       w.Approver,
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Log: LogConfig{
			Level: "info",
		},
		Workflow: WorkflowConfig{
			ApprovalDelay:  proposal.DefaultApprovalDelay,
			PreviewBaseURL: proposal.DefaultPreviewBaseURL,
			Actor: activity.Actor{
				Name:   "Me (Current User)",
				Avatar: "https://i.pravatar.cc/150?u=currentUser",
			},
			Approver: activity.Actor{
				Name:   "PM Zhang",
				Avatar: "https://i.pravatar.cc/150?u=xiaozhang",
			},
		},
	}
}

// Load reads configuration from defaults, then the YAML file at path (or
// DESIGNBOARD_CONFIG_PATH when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q: want stdio or http", c.Transport.Mode)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Workflow.ApprovalDelay < 0 {
		return fmt.Errorf("invalid approval delay %s", c.Workflow.ApprovalDelay)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv(envPrefix + "SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv(envPrefix + "SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %sSERVER_PORT: %w", envPrefix, err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv(envPrefix + "TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv(envPrefix + "LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if seedPath := os.Getenv(envPrefix + "SEED_PATH"); seedPath != "" {
		cfg.Seed.Path = seedPath
	}
	if delayStr := os.Getenv(envPrefix + "APPROVAL_DELAY"); delayStr != "" {
		delay, err := time.ParseDuration(delayStr)
		if err != nil {
			return fmt.Errorf("invalid %sAPPROVAL_DELAY: %w", envPrefix, err)
		}
		cfg.Workflow.ApprovalDelay = delay
	}
	if base := os.Getenv(envPrefix + "PREVIEW_BASE_URL"); base != "" {
		cfg.Workflow.PreviewBaseURL = base
	}
	if name := os.Getenv(envPrefix + "ACTOR_NAME"); name != "" {
		cfg.Workflow.Actor.Name = name
	}
	if name := os.Getenv(envPrefix + "APPROVER_NAME"); name != "" {
		cfg.Workflow.Approver.Name = name
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
