package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"DPRenew/dashboard"
	"DPRenew/notify"
	"DPRenew/report"
)

// Dashboard 抽象一次浏览器会话上的控制台操作，便于在测试里替换。
type Dashboard interface {
	Login(ctx context.Context) error
	ListDomains(ctx context.Context) ([]dashboard.Row, error)
	Renew(ctx context.Context, row dashboard.Row) error
	Screenshot(ctx context.Context, path string) error
	Close()
}

// SessionFactory 为每轮尝试新建会话，失败的尝试不向下一轮带任何状态。
type SessionFactory func(ctx context.Context) (Dashboard, error)

// Runner 负责整轮流程的编排和有界重试。
type Runner struct {
	Sessions      SessionFactory
	Sender        notify.Sender
	Verifier      *ExpiryVerifier
	ResultPath    string
	ScreenshotDir string
	MaxRetries    int
	RetryDelay    time.Duration

	lastShot string
}

// Run 执行至多 MaxRetries 轮完整尝试。任意一轮成功即保存结果并推送报告；
// 全部失败时只发一次最终失败通知并返回错误。
func (r *Runner) Run(ctx context.Context) error {
	if r.Sessions == nil || r.Sender == nil {
		return ErrMissingDependencies
	}
	retries := r.MaxRetries
	if retries <= 0 {
		retries = 3
	}

	start := time.Now()
	var lastErr error

	for attempt := 1; attempt <= retries; attempt++ {
		log.Printf("尝试 #%d/%d", attempt, retries)

		rep, err := r.runOnce(ctx, attempt)
		if err == nil {
			if saveErr := rep.Save(r.resultPath()); saveErr != nil {
				log.Printf("保存结果失败: %v", saveErr)
			} else {
				log.Printf("处理结果已保存到 %s", r.resultPath())
			}
			if sendErr := r.Sender.Send(ctx, rep.Summary(retries)); sendErr != nil {
				log.Printf("发送通知失败: %v", sendErr)
			}
			log.Printf("续期完成 - 成功: %d, 跳过: %d, 失败: %d, 耗时: %.1f秒",
				len(rep.Renewed), len(rep.Skipped), len(rep.Failed), time.Since(start).Seconds())
			return nil
		}

		lastErr = err
		log.Printf("尝试 #%d 失败: %v", attempt, err)

		if attempt < retries {
			select {
			case <-ctx.Done():
			case <-time.After(r.retryDelay()):
			}
			if ctx.Err() != nil {
				lastErr = ctx.Err()
				break
			}
		}
	}

	// 最终失败通知只发一次。进程可能已收到终止信号，这里单独给通知留时间。
	notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.Sender.Send(notifyCtx, report.FailureSummary(retries, lastErr)); err != nil {
		log.Printf("发送最终失败通知失败: %v", err)
	}
	if r.lastShot != "" {
		if err := r.Sender.SendDocumentPath(notifyCtx, r.lastShot, "失败截图"); err != nil {
			log.Printf("发送失败截图失败: %v", err)
		}
	}

	return fmt.Errorf("%w: 已重试 %d 次, 最后错误: %v", ErrAttemptsExhausted, retries, lastErr)
}

// runOnce 是一次完整的登录+枚举+续期流程，会话在本轮内独占并保证释放。
func (r *Runner) runOnce(ctx context.Context, attempt int) (*report.Report, error) {
	sess, err := r.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化浏览器会话失败: %w", err)
	}
	defer sess.Close()

	if err := sess.Login(ctx); err != nil {
		r.snapshot(ctx, sess, attempt)
		return nil, fmt.Errorf("登录失败: %w", err)
	}

	rows, err := sess.ListDomains(ctx)
	if err != nil {
		r.snapshot(ctx, sess, attempt)
		return nil, err
	}

	rep := report.New(attempt)
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !row.HasRenew {
			rep.AddSkipped(row.Name)
			log.Printf("[%d/%d] %s - 无需续期", i+1, len(rows), row.Name)
			continue
		}

		log.Printf("[%d/%d] %s - 正在续期...", i+1, len(rows), row.Name)
		if err := sess.Renew(ctx, row); err != nil {
			// 单行失败不影响后续行
			rep.AddFailed(row.Name, err.Error())
			log.Printf("[%d/%d] %s - 续期失败: %v", i+1, len(rows), row.Name, err)
			continue
		}
		rep.AddRenewed(row.Name)
		log.Printf("[%d/%d] %s - 续期成功", i+1, len(rows), row.Name)
	}

	if r.Verifier != nil {
		r.Verifier.Annotate(ctx, rep)
	}
	return rep, nil
}

func (r *Runner) snapshot(ctx context.Context, sess Dashboard, attempt int) {
	dir := r.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("attempt_%d_failed.png", attempt))
	if err := sess.Screenshot(ctx, path); err != nil {
		log.Printf("保存失败截图失败: %v", err)
		return
	}
	log.Printf("已保存失败截图: %s", path)
	r.lastShot = path
}

func (r *Runner) resultPath() string {
	if r.ResultPath == "" {
		return "renewal_results.json"
	}
	return r.ResultPath
}

func (r *Runner) retryDelay() time.Duration {
	if r.RetryDelay <= 0 {
		return 30 * time.Second
	}
	return r.RetryDelay
}
