package dashboard

import "testing"

const listHTML = `<html><body>
<table>
  <thead><tr><th></th><th>Domain</th><th>Status</th><th></th></tr></thead>
  <tbody>
    <tr>
      <td><input type="checkbox"></td>
      <td> example.us.kg </td>
      <td>Active</td>
      <td><button>Renew</button></td>
    </tr>
    <tr>
      <td><input type="checkbox"></td>
      <td>fresh.dpdns.org</td>
      <td>Active</td>
      <td><a href="#">管理</a></td>
    </tr>
    <tr>
      <td><input type="checkbox"></td>
      <td>old.us.kg</td>
      <td>Expiring</td>
      <td><a href="#">续期</a></td>
    </tr>
  </tbody>
</table>
</body></html>`

func TestParseRowsFindsRenewControls(t *testing.T) {
	rows, err := ParseRows(listHTML)
	if err != nil {
		t.Fatalf("ParseRows returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].Name != "example.us.kg" {
		t.Errorf("unexpected name: %q", rows[0].Name)
	}
	if !rows[0].HasRenew {
		t.Errorf("expected row 0 to have a renew control")
	}

	if rows[1].Name != "fresh.dpdns.org" {
		t.Errorf("unexpected name: %q", rows[1].Name)
	}
	if rows[1].HasRenew {
		t.Errorf("row 1 has no renew control, got HasRenew=true")
	}

	if !rows[2].HasRenew {
		t.Errorf("expected 续期 link to count as renew control")
	}
	if rows[2].Index != 2 {
		t.Errorf("unexpected index: %d", rows[2].Index)
	}
}

func TestParseRowsFallsBackToFirstCell(t *testing.T) {
	html := `<table><tbody><tr><td>single.us.kg</td><td></td></tr></tbody></table>`
	rows, err := ParseRows(html)
	if err != nil {
		t.Fatalf("ParseRows returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Name != "single.us.kg" {
		t.Errorf("expected fallback to first cell, got %q", rows[0].Name)
	}
	if rows[0].HasRenew {
		t.Errorf("expected no renew control")
	}
}

func TestParseRowsEmptyTable(t *testing.T) {
	rows, err := ParseRows(`<table><tbody></tbody></table>`)
	if err != nil {
		t.Fatalf("ParseRows returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
