package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DPRenew/browser"
	"DPRenew/config"
	"DPRenew/dashboard"
	"DPRenew/internal/app"
	"DPRenew/notify"

	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := config.Load("config.yaml"); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := config.Cfg
	setupLogging(cfg.LogPath)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sender := buildSender(cfg)

	// 配置错误是致命错误：尽力通知一次后立刻退出，不启动浏览器
	if err := cfg.Validate(); err != nil {
		notifyCtx, cancelNotify := context.WithTimeout(context.Background(), 15*time.Second)
		_ = sender.Send(notifyCtx, "❌ *DigitalPlat 脚本配置错误*\n"+err.Error())
		cancelNotify()
		log.Fatalf("配置校验失败: %v", err)
	}

	log.Println("DigitalPlat 自动续期脚本启动")

	runner := &app.Runner{
		Sessions:      newSessionFactory(cfg),
		Sender:        sender,
		ResultPath:    cfg.ResultPath,
		ScreenshotDir: cfg.ScreenshotDir,
		MaxRetries:    cfg.MaxRetries,
		RetryDelay:    cfg.RetryDelay,
	}
	if cfg.VerifyExpiry {
		runner.Verifier = &app.ExpiryVerifier{
			Whois:        app.DefaultWhoisClient{},
			RateLimit:    time.Second,
			QueryTimeout: 15 * time.Second,
		}
	}

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("程序退出: %v", err)
	}
}

func buildSender(cfg config.Config) notify.Sender {
	var senders []notify.Sender
	if cfg.Telegram.BotToken != "" {
		bot, err := notify.NewBotSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 2, time.Second, 15*time.Second)
		if err != nil {
			log.Printf("初始化 Telegram 失败: %v", err)
		} else {
			senders = append(senders, bot)
		}
	}
	if cfg.BarkURL != "" {
		senders = append(senders, notify.NewBarkSender(cfg.BarkURL, 15*time.Second))
	}
	if len(senders) == 0 {
		log.Println("未配置推送通道，跳过发送通知")
		return notify.NoopSender{}
	}
	return notify.NewMultiSender(senders...)
}

func newSessionFactory(cfg config.Config) app.SessionFactory {
	return func(ctx context.Context) (app.Dashboard, error) {
		log.Println("正在启动浏览器...")
		sess, err := browser.NewSession(ctx, browser.Options{
			Headless:  cfg.Headless,
			ProxyURL:  cfg.ProxyURL,
			ExecPath:  cfg.ChromePath,
			UserAgent: cfg.UserAgent,
		})
		if err != nil {
			return nil, err
		}
		log.Println("浏览器启动成功")
		return dashboard.NewClient(sess, cfg.Email, cfg.Password, dashboard.Timeouts{
			Nav:       cfg.NavTimeout,
			Challenge: cfg.ChallengeTimeout,
			Login:     cfg.LoginTimeout,
			Confirm:   cfg.ConfirmTimeout,
		}), nil
	}
}

func setupLogging(path string) {
	if path == "" {
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
	}))
}
