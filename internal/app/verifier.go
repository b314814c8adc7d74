package app

import (
	"context"
	"log"
	"time"

	"DPRenew/report"
	"DPRenew/tools"
)

// ExpiryVerifier 在续期成功后复核域名的到期时间。
// 纯粹是补充信息：查询失败只记日志，不会把域名改判为失败。
type ExpiryVerifier struct {
	Whois        WhoisClient
	RateLimit    time.Duration
	QueryTimeout time.Duration
}

// Annotate 给报告里每个续期成功的域名补上复核到的到期日期。
func (v *ExpiryVerifier) Annotate(ctx context.Context, rep *report.Report) {
	if v.Whois == nil || rep == nil || len(rep.Renewed) == 0 {
		return
	}

	var ticker *time.Ticker
	if v.RateLimit > 0 {
		ticker = time.NewTicker(v.RateLimit)
		defer ticker.Stop()
	}

	for _, domain := range rep.Renewed {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}

		queryCtx := ctx
		cancel := func() {}
		if v.QueryTimeout > 0 {
			queryCtx, cancel = context.WithTimeout(ctx, v.QueryTimeout)
		}
		expiry, err := v.Whois.Query(queryCtx, domain)
		cancel()
		if err != nil {
			log.Printf("复核 %s 到期时间失败: %v", domain, err)
			continue
		}
		rep.AddVerified(domain, expiry)
		if days, ok := tools.DaysUntil(expiry); ok {
			log.Printf("%s 新到期时间 %s，剩余 %d 天", domain, expiry, days)
		}
	}
}
