package tools

import (
	"regexp"
	"strings"
	"time"

	"github.com/likexian/whois"
	"github.com/openrdap/rdap"
)

var expiryRegex = regexp.MustCompile(
	`(?i)\b(expiration date|expiration|expiry|expires|expires on|registry expiry date|registry expiration date|paid-till)\b[^0-9A-Za-z]*([0-9A-Za-z ,:/\-T\.Z+]+)`,
)

var expiryLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"02-Jan-2006",
	"Jan 02, 2006",
	"January 2 2006",
	"January 02 2006",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// ParseExpiryDate 把各家 whois/RDAP 返回的日期串归一成 YYYY-MM-DD。
func ParseExpiryDate(raw string) (string, bool) {
	cleaned := strings.TrimSpace(strings.Trim(raw, ":"))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// ExtractExpiry 从 whois 原始响应里提取到期日期。
func ExtractExpiry(result string) (string, bool) {
	match := expiryRegex.FindStringSubmatch(result)
	if len(match) < 3 {
		return "", false
	}
	return ParseExpiryDate(match[2])
}

// CheckWhois 查询域名到期日期，RDAP 优先，查不到再退回 whois。
func CheckWhois(domain string) (string, bool) {
	client := &rdap.Client{}
	if d, err := client.QueryDomain(domain); err == nil {
		for _, event := range d.Events {
			if strings.EqualFold(event.Action, "expiration") {
				if parsed, ok := ParseExpiryDate(event.Date); ok {
					return parsed, true
				}
			}
		}
	}

	raw, err := whois.Whois(domain)
	if err != nil {
		return "", false
	}
	return ExtractExpiry(raw)
}

// DaysUntil 返回距离到期日还有多少天，解析失败返回 false。
func DaysUntil(expiry string) (int, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(expiry))
	if err != nil {
		return 0, false
	}
	return int(time.Until(t).Hours() / 24), true
}
