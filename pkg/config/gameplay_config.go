// Package config 提供游戏配置的加载与校验
//
// 所有可调参数集中在 YAML 文件中，加载失败时回退到编译期默认值，
// 配置缺陷不会导致游戏无法启动。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HitShapeCircle / HitShapeAABB 命中形状模式
// 命中形状是配置项而非渲染模式的隐藏逻辑，两种形状计分行为一致
const (
	HitShapeCircle = "circle"
	HitShapeAABB   = "aabb"
)

// PlayfieldConfig 游戏场地尺寸
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`  // 场地宽度（像素）
	Height float64 `yaml:"height"` // 场地高度（像素）
}

// PhysicsConfig 物理模拟参数
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`            // 重力加速度（像素/秒²）
	BounceDampening    float64 `yaml:"bounceDampening"`    // 墙壁反弹保留的法向速度比例 [0,1]
	AirFriction        float64 `yaml:"airFriction"`        // 每步空气阻力系数（乘到速度上）
	GroundFriction     float64 `yaml:"groundFriction"`     // 球落地时水平速度保留比例
	CollisionDampening float64 `yaml:"collisionDampening"` // 球-球碰撞能量保留比例
	MinSeparation      float64 `yaml:"minSeparation"`      // 球-球分离时的最小间隙（像素）
	MaxDeltaTime       float64 `yaml:"maxDeltaTime"`       // 单步时间上限（秒），防止物理爆炸
}

// SlingshotConfig 弹弓发射参数
type SlingshotConfig struct {
	MaxForce        float64 `yaml:"maxForce"`        // 满力发射速度（像素/秒）
	MaxDragDistance float64 `yaml:"maxDragDistance"` // 拉弓距离上限（像素），超出按满力计算
	DeadZone        float64 `yaml:"deadZone"`        // 拉弓死区（像素），低于此距离取消发射
}

// AmmoConfig 弹药经济参数
type AmmoConfig struct {
	Initial          int `yaml:"initial"`          // 初始弹药数
	Max              int `yaml:"max"`              // 弹药上限（稀缺性机制）
	MaxBallsInFlight int `yaml:"maxBallsInFlight"` // 同屏飞行球数上限
}

// BallConfig 球的默认属性
type BallConfig struct {
	Radius float64 `yaml:"radius"` // 默认半径（像素）
}

// ScoringConfig 计分规则参数
type ScoringConfig struct {
	MinActiveSpeed      float64 `yaml:"minActiveSpeed"`      // 计分所需的最小球速（像素/秒），防止静止接触误判
	ComboWindow         float64 `yaml:"comboWindow"`         // 连击维持窗口（秒）
	PerfectShotFraction float64 `yaml:"perfectShotFraction"` // 完美命中判定：距鸟心小于碰撞距离的此比例时分值翻倍
	CenterBonusFraction float64 `yaml:"centerBonusFraction"` // 中心命中弹药奖励判定比例
	MissStreakLimit     int     `yaml:"missStreakLimit"`     // 连续失手此次数后扣一发弹药
	MissWindow          float64 `yaml:"missWindow"`          // 球落地时距上次命中超过此秒数记为失手
	RestSpeed           float64 `yaml:"restSpeed"`           // 低于此速度的落地球视为静止并回收
	HitShape            string  `yaml:"hitShape"`            // 命中形状模式："circle" 或 "aabb"
}

// SpawnConfig 鸟类生成参数
type SpawnConfig struct {
	IntervalMin  float64 `yaml:"intervalMin"`  // 生成间隔下限（秒）
	IntervalMax  float64 `yaml:"intervalMax"`  // 生成间隔上限（秒）
	MaxLiveBirds int     `yaml:"maxLiveBirds"` // 同屏存活鸟数上限，达到上限时生成被推迟而非丢弃
	HeightMin    float64 `yaml:"heightMin"`    // 飞行高度下限（距顶部像素）
	HeightMax    float64 `yaml:"heightMax"`    // 飞行高度上限（距顶部像素）
	EscapeMargin float64 `yaml:"escapeMargin"` // 飞出场地此距离后判定为逃逸（像素）
	WaveDuration float64 `yaml:"waveDuration"` // 每波持续时间（秒），波数提升稀有鸟概率
}

// EffectsConfig 云朵/道具/风系统参数
type EffectsConfig struct {
	CloudCount       int     `yaml:"cloudCount"`       // 云朵障碍物数量
	PowerUpSpawnMin  float64 `yaml:"powerupSpawnMin"`  // 道具生成间隔下限（秒）
	PowerUpSpawnMax  float64 `yaml:"powerupSpawnMax"`  // 道具生成间隔上限（秒）
	PowerUpDuration  float64 `yaml:"powerupDuration"`  // 道具存在时长（秒）
	SlowmoDuration   float64 `yaml:"slowmoDuration"`   // 慢动作道具效果时长（秒）
	WindChangeMin    float64 `yaml:"windChangeMin"`    // 风向变化间隔下限（秒）
	WindChangeMax    float64 `yaml:"windChangeMax"`    // 风向变化间隔上限（秒）
	WindMaxStrength  float64 `yaml:"windMaxStrength"`  // 风力上限（像素/秒²）
	MagnetRange      float64 `yaml:"magnetRange"`      // 磁铁道具吸引范围（像素）
	MagnetForce      float64 `yaml:"magnetForce"`      // 磁铁道具吸引力（像素/秒²）
}

// GameplayConfig 游戏玩法配置根结构
type GameplayConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Slingshot SlingshotConfig `yaml:"slingshot"`
	Ammo      AmmoConfig      `yaml:"ammo"`
	Ball      BallConfig      `yaml:"ball"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Effects   EffectsConfig   `yaml:"effects"`
}

// DefaultGameplayConfig 返回编译期默认配置
// 数值与原版调校一致（重力 800、反弹 0.85、弹弓满力 3500 等）
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 600,
		},
		Physics: PhysicsConfig{
			Gravity:            800.0,
			BounceDampening:    0.85,
			AirFriction:        0.998,
			GroundFriction:     0.7,
			CollisionDampening: 0.92,
			MinSeparation:      2.0,
			MaxDeltaTime:       1.0 / 30.0,
		},
		Slingshot: SlingshotConfig{
			MaxForce:        3500.0,
			MaxDragDistance: 200.0,
			DeadZone:        10.0,
		},
		Ammo: AmmoConfig{
			Initial:          3,
			Max:              8,
			MaxBallsInFlight: 3,
		},
		Ball: BallConfig{
			Radius: 25.0,
		},
		Scoring: ScoringConfig{
			MinActiveSpeed:      100.0,
			ComboWindow:         3.0,
			PerfectShotFraction: 0.5,
			CenterBonusFraction: 0.3,
			MissStreakLimit:     3,
			MissWindow:          2.0,
			RestSpeed:           10.0,
			HitShape:            HitShapeCircle,
		},
		Spawn: SpawnConfig{
			IntervalMin:  1.0,
			IntervalMax:  3.0,
			MaxLiveBirds: 6,
			HeightMin:    80,
			HeightMax:    300,
			EscapeMargin: 160,
			WaveDuration: 30.0,
		},
		Effects: EffectsConfig{
			CloudCount:      3,
			PowerUpSpawnMin: 15.0,
			PowerUpSpawnMax: 25.0,
			PowerUpDuration: 5.0,
			SlowmoDuration:  10.0,
			WindChangeMin:   5.0,
			WindChangeMax:   10.0,
			WindMaxStrength: 100.0,
			MagnetRange:     150.0,
			MagnetForce:     50.0,
		},
	}
}

// LoadGameplayConfig 从 YAML 文件加载玩法配置
//
// 文件不存在或解析失败时返回错误，调用方应回退到 DefaultGameplayConfig。
// 文件中省略的字段使用默认值填充（向后兼容）
func LoadGameplayConfig(filepath string) (*GameplayConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config file %s: %w", filepath, err)
	}

	// 以默认值为基底解析，缺失字段保持默认
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config YAML from %s: %w", filepath, err)
	}

	if err := validateGameplayConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid gameplay config in %s: %w", filepath, err)
	}

	return cfg, nil
}

// validateGameplayConfig 校验配置的合法性
func validateGameplayConfig(cfg *GameplayConfig) error {
	if cfg.Playfield.Width <= 0 || cfg.Playfield.Height <= 0 {
		return fmt.Errorf("playfield dimensions must be positive, got %.0fx%.0f",
			cfg.Playfield.Width, cfg.Playfield.Height)
	}

	if cfg.Physics.BounceDampening < 0 || cfg.Physics.BounceDampening > 1 {
		return fmt.Errorf("bounceDampening must be in [0,1], got %f", cfg.Physics.BounceDampening)
	}

	if cfg.Physics.MaxDeltaTime <= 0 {
		return fmt.Errorf("maxDeltaTime must be positive, got %f", cfg.Physics.MaxDeltaTime)
	}

	if cfg.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %f", cfg.Ball.Radius)
	}

	if cfg.Spawn.IntervalMin <= 0 || cfg.Spawn.IntervalMax < cfg.Spawn.IntervalMin {
		return fmt.Errorf("spawn interval range [%f,%f] is invalid",
			cfg.Spawn.IntervalMin, cfg.Spawn.IntervalMax)
	}

	if cfg.Spawn.MaxLiveBirds < 1 {
		return fmt.Errorf("maxLiveBirds must be at least 1, got %d", cfg.Spawn.MaxLiveBirds)
	}

	if cfg.Ammo.Initial < 1 || cfg.Ammo.Max < cfg.Ammo.Initial {
		return fmt.Errorf("ammo config initial=%d max=%d is invalid", cfg.Ammo.Initial, cfg.Ammo.Max)
	}

	if cfg.Scoring.HitShape != HitShapeCircle && cfg.Scoring.HitShape != HitShapeAABB {
		return fmt.Errorf("hitShape must be %q or %q, got %q",
			HitShapeCircle, HitShapeAABB, cfg.Scoring.HitShape)
	}

	return nil
}
