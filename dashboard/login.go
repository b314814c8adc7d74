package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// pageProbeScript 判断当前停在哪种页面：盾页、登录表单还是面板。
const pageProbeScript = `(function () {
	if (document.querySelector('#challenge-form, .challenge-form, [class*="challenge"]')) { return 'challenge'; }
	if (document.querySelector('input[name="email"], input[type="email"]')) { return 'login'; }
	if (location.href.indexOf('panel/main') !== -1 || location.href.indexOf('dashboard') !== -1) { return 'panel'; }
	return 'unknown';
})()`

// loginResultScript 提交后轮询：进入面板算成功，出现可见错误提示算失败。
const loginResultScript = `(function () {
	if (location.href.indexOf('panel/main') !== -1 || location.href.indexOf('dashboard') !== -1) { return 'ok'; }
	const el = document.querySelector('.error, .alert-danger, [class*="error"]');
	if (el && el.offsetParent !== null && el.textContent.trim() !== '') {
		return 'error:' + el.textContent.trim().slice(0, 160);
	}
	return 'pending';
})()`

// Login 完成一次完整登录：导航、过盾、填表、提交并显式验证结果。
func (c *Client) Login(ctx context.Context) error {
	log.Println("正在访问登录页面...")
	if err := c.run(c.t.Nav, chromedp.Navigate(loginURL)); err != nil {
		return fmt.Errorf("打开登录页失败: %w", err)
	}

	if err := c.waitChallenge(ctx); err != nil {
		return err
	}

	log.Println("等待登录表单变为可见状态...")
	if err := c.run(c.t.Login,
		chromedp.WaitVisible(emailSelector, chromedp.ByQuery),
		chromedp.WaitVisible(passwordSelector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("登录表单未出现: %w", err)
	}

	log.Println("正在填写登录信息...")
	if err := c.run(c.t.Login,
		chromedp.SendKeys(emailSelector, c.email, chromedp.ByQuery),
		chromedp.Sleep(humanDelay()),
		chromedp.SendKeys(passwordSelector, c.password, chromedp.ByQuery),
		chromedp.Sleep(humanDelay()),
		chromedp.Click(submitSelector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("提交登录表单失败: %w", err)
	}

	return c.waitLoginResult(ctx)
}

// waitChallenge 等待 Cloudflare 盾页自动放行。
// 盾页存在期间每 3 秒探测一次，出现登录表单或面板即视为通过。
func (c *Client) waitChallenge(ctx context.Context) error {
	log.Println("正在等待 Cloudflare 验证...")
	deadline := time.Now().Add(c.t.Challenge)

	for {
		var state string
		if err := c.run(10*time.Second, chromedp.Evaluate(pageProbeScript, &state)); err != nil {
			// 页面跳转途中脚本会执行失败，当作未知状态继续等
			state = "unknown"
		}

		switch state {
		case "login":
			log.Println("已通过 Cloudflare 验证，检测到登录表单")
			return nil
		case "panel":
			log.Println("已直接进入面板页面")
			return nil
		case "challenge":
			log.Println("检测到 Cloudflare 挑战页面，等待自动验证...")
		}

		if time.Now().After(deadline) {
			return errors.New("等待 Cloudflare 验证超时")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
}

// waitLoginResult 显式验证登录结果，不依赖“提交即成功”的假设。
func (c *Client) waitLoginResult(ctx context.Context) error {
	deadline := time.Now().Add(c.t.Login)

	for {
		var state string
		if err := c.run(10*time.Second, chromedp.Evaluate(loginResultScript, &state)); err != nil {
			state = "pending"
		}

		switch {
		case state == "ok":
			log.Println("登录成功")
			return nil
		case strings.HasPrefix(state, "error:"):
			return fmt.Errorf("登录被拒绝: %s", strings.TrimPrefix(state, "error:"))
		}

		if time.Now().After(deadline) {
			return errors.New("登录状态验证超时")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}
