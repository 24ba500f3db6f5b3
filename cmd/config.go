package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"appiumhub/domain"
	"appiumhub/service"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envFile         = "ENV_FILE"
	envHTTPPort     = "SERVICE_PORT_HTTP"
	envGRPCPort     = "SERVICE_PORT_GRPC"
	envProduction   = "PRODUCTION"
	envLogFile      = "LOG_FILE"
	envLogRedisAddr = "LOG_REDIS_ADDR"
	envLogRedisKey  = "LOG_REDIS_KEY"
	envRedisAddr    = "REDIS_ADDR"
	envHostIP       = "HOST_IP"
	envConfigPath   = "CONFIG_PATH"
)

const (
	defaultHTTPPort      = 5000
	defaultLogFile       = "logs/app.log"
	defaultLogRedisKey   = "LOGSTASH_APP_LOG"
	defaultADB           = "adb"
	defaultAppiumCommand = "appium"
)

// AppiumHubConfig holds the service configuration. Ports, sinks and addresses come from the
// environment, command templates from the optional YAML file at CONFIG_PATH.
type AppiumHubConfig struct {
	HTTPPort     int
	GRPCPort     int // 0 disables the health endpoint
	Production   bool
	LogFile      string
	LogRedisAddr string
	LogRedisKey  string
	RedisAddr    string // empty disables the registry mirror
	HostIP       string // empty means discover

	ADB              string
	AppiumCommand    string
	Ports            domain.PortRange
	CommandTimeout   time.Duration
	BackgroundLogDir string
	WorkingDir       string
}

// yamlConfig is the root struct for YAML unmarshalling.
type yamlConfig struct {
	ADB              string         `yaml:"adb"`
	AppiumCommand    string         `yaml:"appium_command"`
	PortRange        *yamlPortRange `yaml:"port_range"`
	CommandTimeoutMs int            `yaml:"command_timeout_ms"`
	BackgroundLogDir string         `yaml:"background_log_dir"`
	WorkingDir       string         `yaml:"working_dir"`
}

type yamlPortRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
	Step int `yaml:"step"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig loads configuration from environment variables, after loading ENV_FILE into the
// environment when it is set, and from the YAML file at CONFIG_PATH when it is set.
// Variables already present in the environment win over ENV_FILE.
func LoadConfig() (*AppiumHubConfig, error) {
	if path := strings.TrimSpace(os.Getenv(envFile)); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load %s %s: %w", envFile, path, err)
		}
	}

	httpPort, err := portFromEnv(envHTTPPort, defaultHTTPPort, false)
	if err != nil {
		return nil, err
	}
	grpcPort, err := portFromEnv(envGRPCPort, 0, true)
	if err != nil {
		return nil, err
	}

	production := false
	if s := strings.TrimSpace(os.Getenv(envProduction)); s != "" {
		production, err = strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envProduction, err)
		}
	}

	cfg := &AppiumHubConfig{
		HTTPPort:       httpPort,
		GRPCPort:       grpcPort,
		Production:     production,
		LogFile:        envOr(envLogFile, defaultLogFile),
		LogRedisAddr:   strings.TrimSpace(os.Getenv(envLogRedisAddr)),
		LogRedisKey:    envOr(envLogRedisKey, defaultLogRedisKey),
		RedisAddr:      strings.TrimSpace(os.Getenv(envRedisAddr)),
		HostIP:         strings.TrimSpace(os.Getenv(envHostIP)),
		ADB:            defaultADB,
		AppiumCommand:  defaultAppiumCommand,
		Ports:          domain.DefaultPortRange(),
		CommandTimeout: domain.DefaultCommandTimeout,
	}
	if cfg.Production && cfg.LogRedisAddr == "" {
		return nil, fmt.Errorf("%s is required when %s is set", envLogRedisAddr, envProduction)
	}

	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, absErr := filepath.Abs(configPath)
			if absErr != nil {
				return nil, absErr
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		if err := applyYAML(cfg, raw); err != nil {
			return nil, fmt.Errorf("config %s: %w", configPath, err)
		}
	}

	return cfg, nil
}

func applyYAML(cfg *AppiumHubConfig, raw *yamlConfig) error {
	if s := strings.TrimSpace(raw.ADB); s != "" {
		cfg.ADB = s
	}
	if s := strings.TrimSpace(raw.AppiumCommand); s != "" {
		cfg.AppiumCommand = s
	}
	if raw.PortRange != nil {
		cfg.Ports = domain.PortRange{From: raw.PortRange.From, To: raw.PortRange.To, Step: raw.PortRange.Step}
		if cfg.Ports.Step == 0 {
			cfg.Ports.Step = domain.DefaultPortRange().Step
		}
		if err := service.ValidatePortRange(cfg.Ports); err != nil {
			return fmt.Errorf("port_range: %w", err)
		}
	}
	if raw.CommandTimeoutMs < 0 {
		return fmt.Errorf("command_timeout_ms must be positive, got %d", raw.CommandTimeoutMs)
	}
	if raw.CommandTimeoutMs > 0 {
		cfg.CommandTimeout = time.Duration(raw.CommandTimeoutMs) * time.Millisecond
	}
	cfg.BackgroundLogDir = strings.TrimSpace(raw.BackgroundLogDir)
	cfg.WorkingDir = strings.TrimSpace(raw.WorkingDir)
	return nil
}

func portFromEnv(name string, fallback int, allowZero bool) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return fallback, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if port > 65535 || port < 0 || (port == 0 && !allowZero) {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}

func envOr(name, fallback string) string {
	if s := strings.TrimSpace(os.Getenv(name)); s != "" {
		return s
	}
	return fallback
}
