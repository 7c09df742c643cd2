// Package game 提供跨系统共享的会话状态、场景管理和持久化
package game

import (
	"log"
	"math"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
)

// Phase 游戏会话阶段
type Phase int

const (
	// PhaseRunning 运行中：物理、生成器和命中检测每帧推进
	PhaseRunning Phase = iota
	// PhasePaused 暂停：世界冻结，仅接受恢复/重置输入
	PhasePaused
	// PhaseGameOver 游戏结束：弹药与飞行球均耗尽，等待重置
	PhaseGameOver
)

// HighScoreStore 最高分持久化端口
//
// 会话不直接接触存储细节；注入的实现负责读写。
// 读取失败返回 0（缺失/损坏不致命），写入为尽力而为
type HighScoreStore interface {
	// Load 读取已保存的最高分，缺失或损坏时返回 0
	Load() int
	// Save 立即写入新的最高分记录
	Save(score int) error
}

// Session 单局游戏的全部可变状态
//
// 会话由游戏场景独占持有，所有系统通过指针共享读写；
// 模拟严格单线程，不存在并发写入。外部渲染器只能通过
// Snapshot 获得只读副本
type Session struct {
	cfg   *config.GameplayConfig
	store HighScoreStore

	Phase Phase
	Clock float64 // 累计游戏时间（秒），暂停期间不推进

	// 计分
	Score     int
	HighScore int

	// 弹药经济
	Ammo          int
	BallsInFlight int
	ShotsFired    int
	MissStreak    int

	// 连击
	ComboCount int
	MaxCombo   int
	ComboTimer float64
	LastHitAt  float64 // 上次命中的游戏时间，球落地判定失手时参照

	// 波次
	Wave      int
	WaveClock float64

	// 道具效果
	MultiballArmed bool    // 下一次发射触发多重球
	BigballActive  bool    // 之后创建的球半径加倍
	MagnetActive   bool    // 球被吸向最近的鸟
	SlowmoUntil    float64 // 慢动作持续到的游戏时间

	// 风
	WindStrength  float64 // 风力（像素/秒²）
	WindDirection float64 // 风向（弧度）
	WindTimer     float64 // 距下次风向变化的累计时间

	// 当前鸟渲染模式（装饰性，按键切换）
	RenderMode components.BirdRenderMode
}

// NewSession 创建新会话并从存储加载最高分
//
// 参数：
//   - cfg: 玩法配置
//   - store: 最高分持久化端口，可为 nil（仅内存模式）
func NewSession(cfg *config.GameplayConfig, store HighScoreStore) *Session {
	s := &Session{
		cfg:   cfg,
		store: store,
	}
	s.resetState()
	if store != nil {
		s.HighScore = store.Load()
	}
	return s
}

// resetState 重置单局状态（不触碰 HighScore 与渲染模式）
func (s *Session) resetState() {
	s.Phase = PhaseRunning
	s.Clock = 0
	s.Score = 0
	s.Ammo = s.cfg.Ammo.Initial
	s.BallsInFlight = 0
	s.ShotsFired = 0
	s.MissStreak = 0
	s.ComboCount = 0
	s.MaxCombo = 0
	s.ComboTimer = 0
	s.LastHitAt = -math.MaxFloat64
	s.Wave = 1
	s.WaveClock = 0
	s.MultiballArmed = false
	s.BigballActive = false
	s.MagnetActive = false
	s.SlowmoUntil = 0
	s.WindStrength = 0
	s.WindDirection = 0
	s.WindTimer = 0
}

// Reset 重置会话到初始状态，保留持久化的最高分
// 任意阶段都可触发
func (s *Session) Reset() {
	s.recordHighScore()
	s.resetState()
	log.Printf("[Session] Game reset, high score preserved: %d", s.HighScore)
}

// Update 推进会话计时器：连击窗口、慢动作、波次时钟
// 返回本帧是否进入了新的一波
//
// 仅在 PhaseRunning 时由场景调用
func (s *Session) Update(deltaTime float64) (waveAdvanced bool) {
	s.Clock += deltaTime

	// 连击窗口倒计时
	if s.ComboCount > 0 {
		s.ComboTimer -= deltaTime
		if s.ComboTimer <= 0 {
			s.ComboCount = 0
		}
	}

	// 波次推进
	s.WaveClock += deltaTime
	if s.WaveClock >= s.cfg.Spawn.WaveDuration {
		s.WaveClock = 0
		s.Wave++
		return true
	}
	return false
}

// AddScore 增加得分并维护最高分不变量
//
// score 只增不减；每次得分更新都执行 highScore = max(highScore, score)，
// 刷新记录时立即写入存储（非批量），进程突然退出不会丢失记录
func (s *Session) AddScore(points int) {
	if points <= 0 {
		return
	}
	s.Score += points
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		if s.store != nil {
			if err := s.store.Save(s.HighScore); err != nil {
				// 存储失败不影响计分逻辑
				log.Printf("[Session] Warning: failed to save high score: %v", err)
			}
		}
	}
}

// RegisterHit 记录一次命中：连击 +1，重置失手计数
// 返回更新后的连击数
func (s *Session) RegisterHit() int {
	s.ComboCount++
	if s.ComboCount > s.MaxCombo {
		s.MaxCombo = s.ComboCount
	}
	s.ComboTimer = s.cfg.Scoring.ComboWindow
	s.LastHitAt = s.Clock
	s.MissStreak = 0
	return s.ComboCount
}

// ComboMultiplier 返回当前连击的分数倍率
// 无连击时为 1，每层连击 +0.5
func (s *Session) ComboMultiplier() float64 {
	if s.ComboCount <= 0 {
		return 1.0
	}
	return 1.0 + float64(s.ComboCount)*0.5
}

// RegisterMiss 记录一次失手
// 连续失手达到上限时扣除一发弹药并清零失手计数，返回 true
func (s *Session) RegisterMiss() (penalized bool) {
	s.MissStreak++
	if s.MissStreak >= s.cfg.Scoring.MissStreakLimit {
		if s.Ammo > 0 {
			s.Ammo--
		}
		s.MissStreak = 0
		return true
	}
	return false
}

// GrantAmmo 发放弹药奖励，受上限约束
// 返回实际到账的数量
func (s *Session) GrantAmmo(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := s.Ammo
	s.Ammo = min(s.Ammo+amount, s.cfg.Ammo.Max)
	return s.Ammo - before
}

// CanStageBall 是否允许创建新的待发射球
// 弹药耗尽或同屏飞行球达到上限时不允许
func (s *Session) CanStageBall() bool {
	return s.Ammo > 0 && s.BallsInFlight < s.cfg.Ammo.MaxBallsInFlight
}

// FireBall 消耗一发弹药并登记发射
func (s *Session) FireBall() {
	s.Ammo--
	s.BallsInFlight++
	s.ShotsFired++
}

// BallRetired 登记一个飞行球被回收
func (s *Session) BallRetired() {
	if s.BallsInFlight > 0 {
		s.BallsInFlight--
	}
}

// SlowmoActive 慢动作效果是否生效中
func (s *Session) SlowmoActive() bool {
	return s.Clock < s.SlowmoUntil
}

// ActivateSlowmo 激活慢动作效果
func (s *Session) ActivateSlowmo() {
	s.SlowmoUntil = s.Clock + s.cfg.Effects.SlowmoDuration
}

// IsExhausted 弹药与飞行球是否都已耗尽（游戏结束条件）
func (s *Session) IsExhausted() bool {
	return s.Ammo <= 0 && s.BallsInFlight <= 0
}

// TogglePause 在运行与暂停之间切换
// 游戏结束阶段不可暂停
func (s *Session) TogglePause() {
	switch s.Phase {
	case PhaseRunning:
		s.Phase = PhasePaused
	case PhasePaused:
		s.Phase = PhaseRunning
	}
}

// EnterGameOver 进入游戏结束阶段并落盘最高分
func (s *Session) EnterGameOver() {
	if s.Phase == PhaseGameOver {
		return
	}
	s.Phase = PhaseGameOver
	s.recordHighScore()
	log.Printf("[Session] Game over, final score: %d (high score: %d)", s.Score, s.HighScore)
}

// recordHighScore 确保当前得分被纳入最高分并持久化
func (s *Session) recordHighScore() {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	if s.store != nil {
		if err := s.store.Save(s.HighScore); err != nil {
			log.Printf("[Session] Warning: failed to save high score: %v", err)
		}
	}
}

// Config 返回会话使用的玩法配置
func (s *Session) Config() *config.GameplayConfig {
	return s.cfg
}
