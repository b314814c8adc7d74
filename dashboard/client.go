package dashboard

import (
	"context"
	"math/rand"
	"time"

	"DPRenew/browser"

	"github.com/chromedp/chromedp"
)

// 站点固定入口。页面结构随时可能变化，选择器集中放在这里便于跟着改。
const (
	loginURL   = "https://dash.domain.digitalplat.org/auth/login"
	domainsURL = "https://dash.domain.digitalplat.org/panel/main?page=%2Fpanel%2Fdomains"

	emailSelector    = `input[name="email"], input[type="email"]`
	passwordSelector = `input[name="password"], input[type="password"]`
	submitSelector   = `button[type="submit"]`
	rowSelector      = `table tbody tr`
)

// Timeouts 约束各阶段的等待上限，零值由调用方负责填好。
type Timeouts struct {
	Nav       time.Duration
	Challenge time.Duration
	Login     time.Duration
	Confirm   time.Duration
}

// Client 驱动 DigitalPlat 控制台的登录与续期流程。
// 不做整轮重试，失败直接返回错误交给上层。
type Client struct {
	sess     *browser.Session
	email    string
	password string
	t        Timeouts
}

func NewClient(sess *browser.Session, email, password string, t Timeouts) *Client {
	return &Client{sess: sess, email: email, password: password, t: t}
}

// run 在会话上下文上执行动作并套上阶段超时。
// 会话上下文派生自进程根上下文，进程级取消会一并传递。
func (c *Client) run(d time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(c.sess.Context(), d)
	defer cancel()
	return c.sess.Run(ctx, actions...)
}

func (c *Client) Screenshot(ctx context.Context, path string) error {
	runCtx, cancel := context.WithTimeout(c.sess.Context(), 15*time.Second)
	defer cancel()
	return c.sess.Screenshot(runCtx, path)
}

func (c *Client) Close() {
	c.sess.Close()
}

// humanDelay 返回 0.5~1.5 秒的随机延迟，填表时穿插使用。
func humanDelay() time.Duration {
	return 500*time.Millisecond + time.Duration(rand.Int63n(int64(time.Second)))
}
