package game

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

// 最高分在 gdata 中的存储路径
const (
	highScoreObject   = "records"
	highScoreProperty = "highscore"
)

// HighScoreManager 最高分持久化管理器
//
// 基于 gdata 跨平台存储，实现 HighScoreStore 端口。
// 数值以纯文本存储，损坏或缺失时按 0 处理。
// gdataManager 为 nil 时进入降级模式（仅内存，不报错）
type HighScoreManager struct {
	gdataManager *gdata.Manager
}

// NewHighScoreManager 创建最高分管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewHighScoreManager(gdataManager *gdata.Manager) *HighScoreManager {
	return &HighScoreManager{gdataManager: gdataManager}
}

// Load 读取已保存的最高分
//
// 存储不可用、记录缺失或内容损坏时返回 0，不产生错误——
// 丢失记录不应阻止游戏开始
func (hm *HighScoreManager) Load() int {
	if hm.gdataManager == nil {
		return 0
	}

	if !hm.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		return 0
	}

	data, err := hm.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		log.Printf("[HighScore] Warning: failed to load high score: %v (using 0)", err)
		return 0
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		log.Printf("[HighScore] Warning: corrupt high score record %q (using 0)", string(data))
		return 0
	}

	return score
}

// Save 立即写入新的最高分记录
//
// 每次刷新记录时调用（非批量），降级模式下为无操作
func (hm *HighScoreManager) Save(score int) error {
	if hm.gdataManager == nil {
		return nil
	}

	data := []byte(strconv.Itoa(score))
	if err := hm.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}

	return nil
}
