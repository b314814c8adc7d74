package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save 把结果记录写到固定路径，每次运行整体覆盖。
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化结果失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入结果文件失败: %w", err)
	}
	return nil
}

// Load 读取上一次的结果记录，只在排查时使用。
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取结果文件失败: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("解析结果文件失败: %w", err)
	}
	return &r, nil
}
