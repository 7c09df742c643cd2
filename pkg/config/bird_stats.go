package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 鸟类型在配置文件中的键名
const (
	BirdKeyRegular = "regular"
	BirdKeyGolden  = "golden"
	BirdKeyAngry   = "angry"
	BirdKeyRare    = "rare"
)

// BirdStats 单个鸟类型的属性配置
type BirdStats struct {
	Speed      float64 `yaml:"speed"`      // 飞行速度（像素/秒）
	Points     int     `yaml:"points"`     // 击中得分
	AmmoReward int     `yaml:"ammoReward"` // 击中奖励的弹药数
	Weight     int     `yaml:"weight"`     // 生成权重，用于随机选择鸟类型
}

// BirdStatsConfig 鸟类属性配置文件结构
type BirdStatsConfig struct {
	Birds map[string]BirdStats `yaml:"birds"` // 鸟类型到属性的映射
}

// DefaultBirdStats 返回默认的鸟类属性表
// 数值与原版一致：棕鸟 1 分无弹药（稀缺性），金鸟 5 分 +1，
// 红鸟 3 分之字形，蓝鸟 10 分 +2 且会闪避
func DefaultBirdStats() *BirdStatsConfig {
	return &BirdStatsConfig{
		Birds: map[string]BirdStats{
			BirdKeyRegular: {Speed: 100.0, Points: 1, AmmoReward: 0, Weight: 60},
			BirdKeyGolden:  {Speed: 150.0, Points: 5, AmmoReward: 1, Weight: 20},
			BirdKeyAngry:   {Speed: 120.0, Points: 3, AmmoReward: 0, Weight: 15},
			BirdKeyRare:    {Speed: 200.0, Points: 10, AmmoReward: 2, Weight: 5},
		},
	}
}

// LoadBirdStats 从 YAML 文件加载鸟类属性配置
//
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*BirdStatsConfig - 解析后的配置对象
//	error - 文件读取、解析或校验失败时返回错误
func LoadBirdStats(filepath string) (*BirdStatsConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bird stats file %s: %w", filepath, err)
	}

	var cfg BirdStatsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bird stats YAML from %s: %w", filepath, err)
	}

	if err := validateBirdStats(&cfg); err != nil {
		return nil, fmt.Errorf("invalid bird stats in %s: %w", filepath, err)
	}

	return &cfg, nil
}

// validateBirdStats 校验鸟类属性配置的完整性和合法性
func validateBirdStats(cfg *BirdStatsConfig) error {
	required := []string{BirdKeyRegular, BirdKeyGolden, BirdKeyAngry, BirdKeyRare}
	for _, key := range required {
		stats, ok := cfg.Birds[key]
		if !ok {
			return fmt.Errorf("bird type %q is missing", key)
		}

		if stats.Speed <= 0 {
			return fmt.Errorf("bird %s: speed must be positive, got %f", key, stats.Speed)
		}

		if stats.Points < 0 {
			return fmt.Errorf("bird %s: points cannot be negative, got %d", key, stats.Points)
		}

		if stats.AmmoReward < 0 {
			return fmt.Errorf("bird %s: ammoReward cannot be negative, got %d", key, stats.AmmoReward)
		}

		if stats.Weight < 0 {
			return fmt.Errorf("bird %s: weight cannot be negative, got %d", key, stats.Weight)
		}
	}

	totalWeight := 0
	for _, stats := range cfg.Birds {
		totalWeight += stats.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("total spawn weight must be positive, got %d", totalWeight)
	}

	return nil
}

// TotalWeight 返回所有鸟类型的权重之和
func (c *BirdStatsConfig) TotalWeight() int {
	total := 0
	for _, stats := range c.Birds {
		total += stats.Weight
	}
	return total
}
