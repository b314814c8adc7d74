// Package report 汇总一次运行的续期结果，负责落盘和生成通知文本。
package report

import (
	"fmt"
	"strings"
	"time"
)

// VerifiedExpiry 记录续期后复核到的到期时间。
type VerifiedExpiry struct {
	Domain string `json:"domain"`
	Expiry string `json:"expiry"`
}

// Report 是单次运行的扁平结果记录，每次运行覆盖写同一个文件。
// 各计数始终等于对应列表的长度，由 Add 系列方法维护。
type Report struct {
	Timestamp    string           `json:"timestamp"`
	Attempt      int              `json:"attempt"`
	RenewedCount int              `json:"renewed_count"`
	FailedCount  int              `json:"failed_count"`
	SkippedCount int              `json:"skipped_count"`
	Renewed      []string         `json:"renewed_domains"`
	Failed       []string         `json:"failed_domains"`
	Skipped      []string         `json:"skipped_domains"`
	Errors       []string         `json:"errors"`
	Verified     []VerifiedExpiry `json:"verified_expiry,omitempty"`
}

func New(attempt int) *Report {
	return &Report{
		Timestamp: time.Now().Format(time.RFC3339),
		Attempt:   attempt,
		Renewed:   []string{},
		Failed:    []string{},
		Skipped:   []string{},
		Errors:    []string{},
	}
}

func (r *Report) AddRenewed(domain string) {
	r.Renewed = append(r.Renewed, domain)
	r.RenewedCount = len(r.Renewed)
}

func (r *Report) AddFailed(domain, reason string) {
	r.Failed = append(r.Failed, domain)
	r.FailedCount = len(r.Failed)
	r.Errors = append(r.Errors, fmt.Sprintf("%s - %s", domain, reason))
}

func (r *Report) AddSkipped(domain string) {
	r.Skipped = append(r.Skipped, domain)
	r.SkippedCount = len(r.Skipped)
}

func (r *Report) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *Report) AddVerified(domain, expiry string) {
	r.Verified = append(r.Verified, VerifiedExpiry{Domain: domain, Expiry: expiry})
}

// Total 返回本次处理过的行数。
func (r *Report) Total() int {
	return len(r.Renewed) + len(r.Failed) + len(r.Skipped)
}

// Summary 生成推送用的报告文本，有错误时用告警版式。
func (r *Report) Summary(maxRetries int) string {
	var b strings.Builder
	if len(r.Errors) > 0 {
		b.WriteString("⚠️ *DigitalPlat 续期报告* ⚠️\n")
		fmt.Fprintf(&b, "⏱️ 时间: %s\n", r.Timestamp)
		fmt.Fprintf(&b, "🔄 尝试: %d/%d\n", r.Attempt, maxRetries)
		fmt.Fprintf(&b, "✅ 成功: %d\n", len(r.Renewed))
		fmt.Fprintf(&b, "⏭️ 跳过: %d\n", len(r.Skipped))
		fmt.Fprintf(&b, "❌ 失败: %d\n\n", len(r.Failed))
		fmt.Fprintf(&b, "最后错误: %s", truncate(r.Errors[len(r.Errors)-1], 200))
	} else {
		b.WriteString("✅ *DigitalPlat 续期成功* ✅\n")
		fmt.Fprintf(&b, "⏱️ 时间: %s\n", r.Timestamp)
		fmt.Fprintf(&b, "🔄 尝试次数: %d\n", r.Attempt)
		fmt.Fprintf(&b, "✔️ 成功: %d个\n", len(r.Renewed))
		fmt.Fprintf(&b, "⏭️ 跳过: %d个", len(r.Skipped))

		if len(r.Renewed) > 0 {
			b.WriteString("\n\n🎉 成功续期:")
			for i, d := range r.Renewed {
				if i == 5 {
					fmt.Fprintf(&b, "\n...等 %d 个域名", len(r.Renewed))
					break
				}
				fmt.Fprintf(&b, "\n• %s", d)
			}
		}
	}

	if len(r.Verified) > 0 {
		b.WriteString("\n\n📅 复核到期时间:")
		for _, v := range r.Verified {
			fmt.Fprintf(&b, "\n• %s → %s", v.Domain, v.Expiry)
		}
	}
	return b.String()
}

// FailureSummary 生成重试耗尽后的最终失败通知。
func FailureSummary(maxRetries int, lastErr error) string {
	reason := "未知错误"
	if lastErr != nil {
		reason = truncate(lastErr.Error(), 300)
	}
	return fmt.Sprintf("❌ *DigitalPlat 续期彻底失败* ❌\n已重试 %d 次\n最后错误: %s\n请立即手动检查!", maxRetries, reason)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
