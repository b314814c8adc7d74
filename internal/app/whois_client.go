package app

import (
	"context"
	"errors"

	"DPRenew/tools"
)

type WhoisClient interface {
	Query(ctx context.Context, domain string) (string, error)
}

var ErrWhoisExpiryNotFound = errors.New("expiry lookup failed")

// DefaultWhoisClient 通过 RDAP/whois 查询到期日期，底层库不吃 context，
// 所以放到 goroutine 里并用 select 保证超时可用。
type DefaultWhoisClient struct{}

func (DefaultWhoisClient) Query(ctx context.Context, domain string) (string, error) {
	type result struct {
		expiry string
		err    error
	}

	ch := make(chan result, 1)
	go func() {
		expiry, ok := tools.CheckWhois(domain)
		if !ok {
			ch <- result{err: ErrWhoisExpiryNotFound}
			return
		}
		ch <- result{expiry: expiry}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.expiry, res.err
	}
}
