// Package notify 提供运行结果的推送通道。
// 所有通道都是尽力而为：推送失败只记日志，绝不影响主流程退出码。
package notify

import "context"

// Sender 抽象出推送能力，便于替换和测试。
type Sender interface {
	Send(ctx context.Context, msg string) error
	SendDocumentPath(ctx context.Context, filepath string, caption string) error
}

type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, msg string) error { return nil }
func (NoopSender) SendDocumentPath(ctx context.Context, filepath string, caption string) error {
	return nil
}
