package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	confirmPattern  = `确认|confirm`
	checkoutPattern = `checkout|complete order|结账|支付`
)

// termsScript 勾选订单页上尚未勾选的条款复选框，没有就算了。
const termsScript = `(function () {
	const box = document.querySelector('input[type="checkbox"]:not(:checked)');
	if (!box) { return false; }
	box.click();
	return true;
})()`

// Renew 对单行执行完整续期流程：行内续期按钮、订单确认、条款、结账。
// 免费续期时后两步常被折叠，缺失不算失败。
func (c *Client) Renew(ctx context.Context, row Row) error {
	if err := c.clickRowRenew(row); err != nil {
		return err
	}

	if err := c.clickByText(ctx, confirmPattern, c.t.Confirm); err != nil {
		return fmt.Errorf("确认按钮超时: %w", err)
	}

	var checked bool
	if err := c.run(10*time.Second, chromedp.Evaluate(termsScript, &checked)); err == nil && checked {
		log.Printf("%s - 已勾选条款", row.Name)
	}
	if err := c.clickByText(ctx, checkoutPattern, 5*time.Second); err == nil {
		log.Printf("%s - 已提交结账", row.Name)
	}

	// 等后台把订单落地，立刻翻页会丢状态
	return c.run(10*time.Second, chromedp.Sleep(3*time.Second+humanDelay()))
}

// clickRowRenew 按行号重新定位并点击该行的续期控件。
func (c *Client) clickRowRenew(row Row) error {
	script := fmt.Sprintf(`(function () {
		const rows = document.querySelectorAll('table tbody tr');
		const row = rows[%d];
		if (!row) { return 'row-missing'; }
		const hit = Array.from(row.querySelectorAll('button, a'))
			.find(el => /renew|prolong|续期/i.test(el.textContent || ''));
		if (!hit) { return 'control-missing'; }
		hit.click();
		return 'ok';
	})()`, row.Index)

	var state string
	if err := c.run(10*time.Second, chromedp.Evaluate(script, &state)); err != nil {
		return fmt.Errorf("点击续期按钮失败: %w", err)
	}
	switch state {
	case "ok":
		return nil
	case "row-missing":
		return fmt.Errorf("第 %d 行已不存在", row.Index+1)
	default:
		return fmt.Errorf("第 %d 行未找到续期按钮", row.Index+1)
	}
}

// clickByText 轮询点击第一个文本匹配的按钮或链接，超时返回错误。
func (c *Client) clickByText(ctx context.Context, pattern string, timeout time.Duration) error {
	script := fmt.Sprintf(`(function () {
		const els = Array.from(document.querySelectorAll('button, a, input[type="submit"]'));
		const hit = els.find(el => /%s/i.test((el.textContent || el.value || '')));
		if (!hit) { return false; }
		hit.click();
		return true;
	})()`, pattern)

	deadline := time.Now().Add(timeout)
	for {
		var clicked bool
		if err := c.run(10*time.Second, chromedp.Evaluate(script, &clicked)); err == nil && clicked {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("未找到匹配 %q 的按钮", pattern)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
