package dashboard

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// Row 是域名列表里的一行。Index 是该行在表格中的位置，
// 点击续期时按位置重新定位，避免持有过期的节点引用。
type Row struct {
	Index    int
	Name     string
	HasRenew bool
}

var renewPattern = regexp.MustCompile(`(?i)renew|prolong|续期`)

// ListDomains 打开域名列表页并解析出全部行。
func (c *Client) ListDomains(ctx context.Context) ([]Row, error) {
	log.Println("正在加载域名列表...")
	if err := c.run(c.t.Nav, chromedp.Navigate(domainsURL)); err != nil {
		return nil, fmt.Errorf("打开域名列表失败: %w", err)
	}
	if err := c.run(c.t.Login, chromedp.WaitVisible(rowSelector, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("域名列表加载超时: %w", err)
	}

	var html string
	if err := c.run(c.t.Login, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("读取页面内容失败: %w", err)
	}

	rows, err := ParseRows(html)
	if err != nil {
		return nil, err
	}
	log.Printf("发现 %d 个域名", len(rows))
	return rows, nil
}

// ParseRows 从页面 HTML 中解析域名行。
// 域名优先取第二列（首列通常是复选框或序号），取不到再退回首列。
func ParseRows(html string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("解析页面失败: %w", err)
	}

	var rows []Row
	doc.Find(rowSelector).Each(func(i int, tr *goquery.Selection) {
		name := cellText(tr.Find("td").Eq(1))
		if name == "" {
			name = cellText(tr.Find("td").First())
		}
		if name == "" {
			name = "未知域名"
		}

		hasRenew := false
		tr.Find("button, a").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if renewPattern.MatchString(el.Text()) {
				hasRenew = true
				return false
			}
			return true
		})

		rows = append(rows, Row{Index: i, Name: name, HasRenew: hasRenew})
	})
	return rows, nil
}

func cellText(cell *goquery.Selection) string {
	fields := strings.Fields(cell.Text())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
