package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// BarkSender 通过 Bark 服务端推送，serverURL 需要带上设备 key。
type BarkSender struct {
	client *resty.Client
	url    string
}

func NewBarkSender(serverURL string, timeout time.Duration) *BarkSender {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &BarkSender{client: client, url: serverURL}
}

type barkPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Group string `json:"group"`
}

func (s *BarkSender) Send(ctx context.Context, msg string) error {
	if s.url == "" {
		return errors.New("bark url is empty")
	}

	title := "DigitalPlat 续期"
	body := msg
	// 首行当标题，Bark 的正文不渲染 Markdown
	if i := strings.Index(msg, "\n"); i > 0 {
		title = strings.Trim(strings.TrimSpace(msg[:i]), "*")
		body = strings.TrimSpace(msg[i+1:])
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(barkPayload{Title: title, Body: body, Group: "digitalplat"}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("发送 Bark 失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("发送 Bark 失败: HTTP %d", resp.StatusCode())
	}
	return nil
}

// SendDocumentPath Bark 不支持附件，忽略。
func (s *BarkSender) SendDocumentPath(ctx context.Context, filepath string, caption string) error {
	return nil
}
