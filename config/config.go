package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DigitalPlat 账号信息
	Email    string `yaml:"email"`
	Password string `yaml:"password"`

	Telegram Telegram `yaml:"telegram"`
	// Bark 推送地址，留空则不启用
	BarkURL string `yaml:"barkURL"`

	ProxyURL   string `yaml:"proxyURL"`
	ChromePath string `yaml:"chromePath"`
	Headless   bool   `yaml:"headless"`
	UserAgent  string `yaml:"userAgent"`

	MaxRetries int           `yaml:"maxRetries"`
	RetryDelay time.Duration `yaml:"retryDelay"`

	NavTimeout       time.Duration `yaml:"navTimeout"`
	ChallengeTimeout time.Duration `yaml:"challengeTimeout"`
	LoginTimeout     time.Duration `yaml:"loginTimeout"`
	ConfirmTimeout   time.Duration `yaml:"confirmTimeout"`

	ResultPath    string `yaml:"resultPath"`
	LogPath       string `yaml:"logPath"`
	ScreenshotDir string `yaml:"screenshotDir"`
	// 续期成功后是否通过 RDAP/whois 复核到期时间
	VerifyExpiry bool `yaml:"verifyExpiry"`
}

type Telegram struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatID"`
}

var Cfg Config

// Default 返回内置默认值，浏览器与超时参数沿用线上验证过的配置。
func Default() Config {
	return Config{
		Headless:         true,
		UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		MaxRetries:       3,
		RetryDelay:       30 * time.Second,
		NavTimeout:       120 * time.Second,
		ChallengeTimeout: 180 * time.Second,
		LoginTimeout:     60 * time.Second,
		ConfirmTimeout:   15 * time.Second,
		ResultPath:       "renewal_results.json",
		LogPath:          "renewal.log",
		ScreenshotDir:    ".",
		VerifyExpiry:     true,
	}
}

// Load 读取可选的配置文件，再用环境变量覆盖，结果写入全局 Cfg。
// 配置文件不存在不算错误，部署到 GHA 时通常只用环境变量。
func Load(path string) error {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}

	applyEnv(&cfg)
	Cfg = cfg
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DP_EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("DP_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("TG_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TG_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("BARK_URL"); v != "" {
		cfg.BarkURL = v
	}
	if v := os.Getenv("PROXY_URL"); v != "" {
		cfg.ProxyURL = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}
}

// Validate 校验必填项，缺少账号信息时直接报错，由调用方决定退出。
func (c Config) Validate() error {
	var missing []string
	if c.Email == "" {
		missing = append(missing, "DP_EMAIL")
	}
	if c.Password == "" {
		missing = append(missing, "DP_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺少必需的配置项: %v", missing)
	}
	if c.MaxRetries <= 0 {
		return errors.New("maxRetries 必须大于 0")
	}
	return nil
}
