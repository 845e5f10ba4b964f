package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/betbot/futbot/pkg/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 运行配置。
// 优先级：命令行参数 > 环境变量 > 配置文件 > 默认值。
type Config struct {
	// BaseURL 交易所 REST 服务地址，默认合约测试网
	BaseURL string `yaml:"baseUrl"`

	// APIKey / APISecret 凭证。配置文件里通常不放，走 .env 或命令行。
	APIKey    string `yaml:"apiKey"`
	APISecret string `yaml:"apiSecret"`

	// Log 日志配置
	Log logger.Config `yaml:"log"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		BaseURL: "https://testnet.binancefuture.com",
		Log:     logger.DefaultConfig(),
	}
}

// Load 加载配置：
// 先读 .env（envPath 为空时尝试当前目录的 .env，不存在不报错），
// 再读 YAML 配置文件（filePath 为空时跳过），最后应用环境变量覆盖。
func Load(filePath, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("加载 env 文件失败 %s: %w", envPath, err)
		}
	} else {
		// 默认 .env 是可选的
		_ = godotenv.Load()
	}

	cfg := Default()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败 %s: %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败 %s: %w", filePath, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv 环境变量覆盖
func applyEnv(cfg *Config) {
	if v := getEnv("FUTBOT_BASE_URL", "BINANCE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := getEnv("FUTBOT_API_KEY", "BINANCE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := getEnv("FUTBOT_API_SECRET", "BINANCE_API_SECRET"); v != "" {
		cfg.APISecret = v
	}
	if v := getEnv("FUTBOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getEnv("FUTBOT_LOG_FILE"); v != "" {
		cfg.Log.OutputFile = v
	}
}

func getEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate 聚合校验所有配置项，一次性报出全部问题
func (c *Config) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.APIKey) == "" {
		result = multierror.Append(result, fmt.Errorf("缺少 API key（-api-key 参数或 FUTBOT_API_KEY 环境变量）"))
	}
	if strings.TrimSpace(c.APISecret) == "" {
		result = multierror.Append(result, fmt.Errorf("缺少 API secret（-api-secret 参数或 FUTBOT_API_SECRET 环境变量）"))
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		result = multierror.Append(result, fmt.Errorf("baseUrl 非法: %q", c.BaseURL))
	}

	return result.ErrorOrNil()
}
