package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSplitTelegramTextShort(t *testing.T) {
	parts := splitTelegramText("hello", 100)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Fatalf("unexpected parts: %v", parts)
	}
}

func TestSplitTelegramTextPrefersNewline(t *testing.T) {
	msg := strings.Repeat("x", 80) + "\n" + strings.Repeat("y", 80)
	parts := splitTelegramText(msg, 100)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if !strings.HasPrefix(parts[0], "x") || !strings.HasPrefix(parts[1], "y") {
		t.Errorf("expected split at the newline, got %v", parts)
	}
}

func TestSplitTelegramTextHardCut(t *testing.T) {
	msg := strings.Repeat("z", 250)
	parts := splitTelegramText(msg, 100)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	for _, p := range parts {
		if len(p) > 100 {
			t.Errorf("part exceeds limit: %d", len(p))
		}
	}
}

type flakySender struct {
	sendErr error
	sent    int
	docs    int
}

func (f *flakySender) Send(ctx context.Context, msg string) error {
	f.sent++
	return f.sendErr
}

func (f *flakySender) SendDocumentPath(ctx context.Context, filepath string, caption string) error {
	f.docs++
	return f.sendErr
}

func TestMultiSenderSwallowsErrors(t *testing.T) {
	bad := &flakySender{sendErr: errors.New("boom")}
	good := &flakySender{}
	m := NewMultiSender(bad, good)

	if err := m.Send(context.Background(), "msg"); err != nil {
		t.Fatalf("MultiSender.Send returned error: %v", err)
	}
	if bad.sent != 1 || good.sent != 1 {
		t.Errorf("expected every channel to be attempted, got %d/%d", bad.sent, good.sent)
	}

	if err := m.SendDocumentPath(context.Background(), "a.png", "cap"); err != nil {
		t.Fatalf("SendDocumentPath returned error: %v", err)
	}
	if good.docs != 1 {
		t.Errorf("expected document fan-out, got %d", good.docs)
	}
}

func TestNoopSender(t *testing.T) {
	var s Sender = NoopSender{}
	if err := s.Send(context.Background(), "x"); err != nil {
		t.Fatalf("noop Send returned error: %v", err)
	}
	if err := s.SendDocumentPath(context.Background(), "x", ""); err != nil {
		t.Fatalf("noop SendDocumentPath returned error: %v", err)
	}
}
