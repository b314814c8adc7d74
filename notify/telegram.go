package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotSender 实现了带简单重试和节流的 Telegram 发送能力。
type BotSender struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	retryTimes int
	rate       *time.Ticker
	timeout    time.Duration
}

func NewBotSender(token string, chatID int64, retryTimes int, rateInterval time.Duration, timeout time.Duration) (*BotSender, error) {
	if token == "" {
		return nil, errors.New("telegram token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &BotSender{
		bot:        bot,
		chatID:     chatID,
		retryTimes: retryTimes,
		rate:       time.NewTicker(rateInterval),
		timeout:    timeout,
	}, nil
}

const tgMaxLen = 3800

func (s *BotSender) Send(ctx context.Context, msg string) error {
	parts := splitTelegramText(msg, tgMaxLen)
	for i, p := range parts {
		if len(parts) > 1 {
			p = fmt.Sprintf("(%d/%d)\n%s", i+1, len(parts), p)
		}
		message := tgbotapi.NewMessage(s.chatID, p)
		message.ParseMode = tgbotapi.ModeMarkdown
		if err := s.sendWithRetry(ctx, func() error {
			_, err := s.bot.Send(message)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// SendDocumentPath 把本地文件作为附件发送，用于失败截图。
func (s *BotSender) SendDocumentPath(ctx context.Context, filepath string, caption string) error {
	if filepath == "" {
		return errors.New("filepath is empty")
	}
	return s.sendWithRetry(ctx, func() error {
		doc := tgbotapi.NewDocument(s.chatID, tgbotapi.FilePath(filepath))
		if caption != "" {
			doc.Caption = caption
		}
		_, err := s.bot.Send(doc)
		return err
	})
}

// sendWithRetry 按节流间隔发送，失败时指数式退一小步后重试。
func (s *BotSender) sendWithRetry(ctx context.Context, send func() error) error {
	for attempt := 0; attempt <= s.retryTimes; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.rate.C:
		}

		result := make(chan error, 1)
		sendCtx := ctx
		cancel := func() {}
		if s.timeout > 0 {
			sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}

		go func() {
			result <- send()
		}()

		select {
		case <-sendCtx.Done():
			cancel()
			if attempt == s.retryTimes {
				return fmt.Errorf("发送 Telegram 超时: %w", sendCtx.Err())
			}
		case err := <-result:
			cancel()
			if err == nil {
				return nil
			}
			if attempt == s.retryTimes {
				return fmt.Errorf("发送 Telegram 失败: %w", err)
			}
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
		}
	}
	return nil
}

// splitTelegramText 把长文本按换行、空格、硬切的优先级拆成多段。
func splitTelegramText(s string, limit int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{""}
	}
	if len(s) <= limit {
		return []string{s}
	}

	var out []string
	for len(s) > limit {
		cut := strings.LastIndex(s[:limit], "\n")
		if cut < limit/3 {
			cut = strings.LastIndex(s[:limit], " ")
		}
		if cut <= 0 {
			cut = limit
		}

		part := strings.TrimSpace(s[:cut])
		if part != "" {
			out = append(out, part)
		}
		s = strings.TrimSpace(s[cut:])
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
