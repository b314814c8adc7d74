package notify

import (
	"context"
	"log"
)

// MultiSender 把消息同时发给多个通道。
// 单个通道失败只记日志，Send 永远返回 nil。
type MultiSender struct {
	senders []Sender
}

func NewMultiSender(senders ...Sender) *MultiSender {
	return &MultiSender{senders: senders}
}

func (m *MultiSender) Send(ctx context.Context, msg string) error {
	for _, s := range m.senders {
		if err := s.Send(ctx, msg); err != nil {
			log.Printf("推送通道发送失败: %v", err)
		}
	}
	return nil
}

func (m *MultiSender) SendDocumentPath(ctx context.Context, filepath string, caption string) error {
	for _, s := range m.senders {
		if err := s.SendDocumentPath(ctx, filepath, caption); err != nil {
			log.Printf("推送通道发送附件失败: %v", err)
		}
	}
	return nil
}
