package browser

import (
	"github.com/chromedp/chromedp"
)

// Options 描述一次浏览器会话的启动参数。
type Options struct {
	Headless     bool
	ProxyURL     string
	ExecPath     string
	UserAgent    string
	WindowWidth  int
	WindowHeight int
}

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
)

func DefaultOptions() Options {
	return Options{
		Headless:     true,
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
	}
}

// buildAllocatorOptions 组装 Chrome 启动参数。
// 参数集合是跑通 GHA 环境后固定下来的，不要随意增删。
func buildAllocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	if opts.WindowWidth <= 0 {
		opts.WindowWidth = defaultWindowWidth
	}
	if opts.WindowHeight <= 0 {
		opts.WindowHeight = defaultWindowHeight
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-features", "site-per-process,VizDisplayCompositor"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
	)

	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ProxyURL != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.ProxyURL))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	return allocOpts
}
