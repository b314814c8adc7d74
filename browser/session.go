package browser

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Session 独占一个浏览器实例，整个运行流程共用同一个标签页。
// Close 可以在任意路径上重复调用，实际释放只发生一次。
type Session struct {
	ctx           context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	closeOnce     sync.Once
}

// NewSession 启动浏览器并注入反检测脚本。
// 启动失败时不会泄漏进程，内部已取消分配器上下文。
func NewSession(parent context.Context, opts Options) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, buildAllocatorOptions(opts)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))

	s := &Session{
		ctx:           browserCtx,
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
	}

	// 第一次 Run 才真正拉起 Chrome，顺带把反检测脚本挂到所有新文档上。
	err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	}))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	return s, nil
}

// Context 返回会话上下文，调用方可在其上派生超时。
func (s *Session) Context() context.Context {
	return s.ctx
}

// Run 在会话上下文上执行一组 chromedp 动作。
func (s *Session) Run(ctx context.Context, actions ...chromedp.Action) error {
	return chromedp.Run(ctx, actions...)
}

// Screenshot 抓取当前视口并写入文件，用于失败诊断。
func (s *Session) Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("截图失败: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("保存截图失败: %w", err)
	}
	return nil
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.browserCancel()
		s.allocCancel()
	})
}
