package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"DPRenew/report"
)

type mapWhois struct {
	expiries map[string]string
	calls    int
}

func (m *mapWhois) Query(ctx context.Context, domain string) (string, error) {
	m.calls++
	if expiry, ok := m.expiries[domain]; ok {
		return expiry, nil
	}
	return "", errors.New("expiry lookup failed")
}

func TestVerifierAnnotatesRenewedDomains(t *testing.T) {
	rep := report.New(1)
	rep.AddRenewed("a.us.kg")
	rep.AddRenewed("b.us.kg")
	rep.AddSkipped("c.us.kg")

	whois := &mapWhois{expiries: map[string]string{"a.us.kg": "2027-01-01", "b.us.kg": "2027-02-02"}}
	v := &ExpiryVerifier{Whois: whois, RateLimit: time.Millisecond, QueryTimeout: time.Second}
	v.Annotate(context.Background(), rep)

	if len(rep.Verified) != 2 {
		t.Fatalf("expected 2 verified entries, got %d", len(rep.Verified))
	}
	if rep.Verified[0].Expiry != "2027-01-01" {
		t.Errorf("unexpected expiry: %s", rep.Verified[0].Expiry)
	}
	if whois.calls != 2 {
		t.Errorf("expected lookups only for renewed domains, got %d", whois.calls)
	}
}

func TestVerifierLookupFailureIsNotARenewalFailure(t *testing.T) {
	rep := report.New(1)
	rep.AddRenewed("gone.us.kg")

	v := &ExpiryVerifier{Whois: &mapWhois{}, RateLimit: time.Millisecond}
	v.Annotate(context.Background(), rep)

	if len(rep.Verified) != 0 {
		t.Errorf("expected no verified entries, got %d", len(rep.Verified))
	}
	if rep.FailedCount != 0 || len(rep.Errors) != 0 {
		t.Errorf("lookup failure must not mark the renewal failed: %d %v", rep.FailedCount, rep.Errors)
	}
}

func TestVerifierNilWhoisIsNoop(t *testing.T) {
	rep := report.New(1)
	rep.AddRenewed("a.us.kg")
	(&ExpiryVerifier{}).Annotate(context.Background(), rep)
	if len(rep.Verified) != 0 {
		t.Errorf("expected noop without a whois client")
	}
}
