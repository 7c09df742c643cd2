package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 渲染配色
var (
	skyColor    = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	groundColor = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	cloudColor  = color.RGBA{R: 255, G: 255, B: 255, A: 230}
	bandColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	previewDot  = color.RGBA{R: 255, G: 255, B: 255, A: 150}
	overlayTint = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	waveColor   = color.RGBA{R: 186, G: 85, B: 211, A: 255}
)

// 鸟的渲染颜色（按类型）
var birdBodyColor = map[components.BirdType]color.RGBA{
	components.BirdRegular: {R: 139, G: 90, B: 43, A: 255},
	components.BirdGolden:  {R: 255, G: 215, B: 0, A: 255},
	components.BirdAngry:   {R: 220, G: 40, B: 40, A: 255},
	components.BirdRare:    {R: 65, G: 105, B: 225, A: 255},
}

// 鸟的表情符号渲染
var birdEmoji = map[components.BirdType]string{
	components.BirdRegular: "🐦",
	components.BirdGolden:  "🐤",
	components.BirdAngry:   "😡",
	components.BirdRare:    "🦅",
}

const groundHeight = 20

// Draw 从快照绘制整个场景
// 只读取快照，不触碰模拟状态
func (s *GameScene) Draw(screen *ebiten.Image) {
	snap := s.snapshot
	if snap == nil {
		return
	}

	s.drawBackground(screen)

	for _, cloud := range snap.Clouds {
		s.drawCloud(screen, cloud)
	}
	for _, pu := range snap.PowerUps {
		s.drawPowerUp(screen, pu)
	}
	for _, bird := range snap.Birds {
		s.drawBird(screen, bird)
	}
	if snap.Dragging && snap.DragBallID >= 0 && snap.DragBallID < len(snap.Balls) {
		s.drawSlingshot(screen, snap)
	}
	for _, ball := range snap.Balls {
		s.drawBall(screen, ball)
	}
	for _, p := range snap.Particles {
		s.drawParticle(screen, p)
	}
	for _, t := range snap.Texts {
		ebitenutil.DebugPrintAt(screen, t.Text, int(t.Pos.X), int(t.Pos.Y))
	}

	s.drawHUD(screen, snap)
	s.drawPhaseOverlay(screen, snap)
}

func (s *GameScene) drawBackground(screen *ebiten.Image) {
	screen.Fill(skyColor)
	vector.DrawFilledRect(screen,
		0, float32(s.cfg.Playfield.Height-groundHeight),
		float32(s.cfg.Playfield.Width), groundHeight,
		groundColor, false)
}

func (s *GameScene) drawCloud(screen *ebiten.Image, cloud game.CloudView) {
	// 三个重叠圆近似云朵形状
	r := float32(cloud.Height / 2)
	cx, cy := float32(cloud.Pos.X), float32(cloud.Pos.Y)
	vector.DrawFilledCircle(screen, cx-float32(cloud.Width)/4, cy, r, cloudColor, true)
	vector.DrawFilledCircle(screen, cx, cy-r/3, r*1.2, cloudColor, true)
	vector.DrawFilledCircle(screen, cx+float32(cloud.Width)/4, cy, r, cloudColor, true)
}

func (s *GameScene) drawBall(screen *ebiten.Image, ball game.BallView) {
	// 压扁系数拉弓时接近 0.7，视觉上画成略小的圆
	r := float32(ball.Radius * ball.Squish)
	vector.DrawFilledCircle(screen, float32(ball.Pos.X), float32(ball.Pos.Y), r, ball.Color, true)
}

func (s *GameScene) drawBird(screen *ebiten.Image, bird game.BirdView) {
	switch bird.RenderMode {
	case components.RenderEmoji:
		ebitenutil.DebugPrintAt(screen, birdEmoji[bird.Type], int(bird.Pos.X)-8, int(bird.Pos.Y)-8)
	default:
		// 精灵模式无素材时与几何模式共用矢量绘制
		body := birdBodyColor[bird.Type]
		x, y := float32(bird.Pos.X), float32(bird.Pos.Y)
		vector.DrawFilledCircle(screen, x, y, 16, body, true)

		// 翅膀扇动：三帧上中下
		wingY := y + float32((bird.WingFrame-1)*6)
		vector.DrawFilledCircle(screen, x-float32(bird.Direction)*10, wingY, 8, color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)

		// 喙指向飞行方向
		beakX := x + float32(bird.Direction)*18
		vector.DrawFilledRect(screen, beakX-3, y-2, 6, 4, color.RGBA{R: 255, G: 165, B: 0, A: 255}, false)
	}
}

func (s *GameScene) drawPowerUp(screen *ebiten.Image, pu game.PowerUpView) {
	a := uint8(pu.Alpha * 255)
	c := color.RGBA{R: 255, G: 215, B: 0, A: a}
	vector.DrawFilledCircle(screen, float32(pu.Pos.X), float32(pu.Pos.Y), 14, c, true)
	label := [...]string{"M", "S", "B", "G"}
	if int(pu.Type) < len(label) {
		ebitenutil.DebugPrintAt(screen, label[pu.Type], int(pu.Pos.X)-3, int(pu.Pos.Y)-8)
	}
}

func (s *GameScene) drawParticle(screen *ebiten.Image, p game.ParticleView) {
	c := p.Color
	c.A = uint8(p.Alpha * 255)
	vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size), c, false)
}

// drawSlingshot 拉弓中的橡皮筋和弹道预览
func (s *GameScene) drawSlingshot(screen *ebiten.Image, snap *game.Snapshot) {
	ball := snap.Balls[snap.DragBallID]
	vector.StrokeLine(screen,
		float32(snap.DragAnchor.X), float32(snap.DragAnchor.Y),
		float32(ball.Pos.X), float32(ball.Pos.Y),
		3, bandColor, true)

	// 弹道预览：按当前拉弓力度模拟一秒的抛物线
	pull := snap.DragAnchor.Sub(ball.Pos)
	dist := pull.Length()
	if dist < s.cfg.Slingshot.DeadZone {
		return
	}
	force := dist / s.cfg.Slingshot.MaxDragDistance
	if force > 1 {
		force = 1
	}
	vel := pull.Normalize().Scale(force * s.cfg.Slingshot.MaxForce)
	pos := ball.Pos
	const step = 0.05
	for i := 0; i < 20; i++ {
		vel.Y += s.cfg.Physics.Gravity * step
		pos = pos.Add(vel.Scale(step))
		if pos.X < 0 || pos.X > s.cfg.Playfield.Width || pos.Y > s.cfg.Playfield.Height {
			break
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), 2, previewDot, false)
	}
}

func (s *GameScene) drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	hud := fmt.Sprintf("SCORE %d  BEST %d  AMMO %d  WAVE %d", snap.Score, snap.HighScore, snap.Ammo, snap.Wave)
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)

	if snap.Combo >= 2 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("COMBO x%d", snap.Combo), 10, 26)
	}

	if s.session.WindStrength > 1 {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("WIND %.0f", s.session.WindStrength),
			int(s.cfg.Playfield.Width)-80, 10)
	}
}

// drawPhaseOverlay 暂停和游戏结束的全屏遮罩
func (s *GameScene) drawPhaseOverlay(screen *ebiten.Image, snap *game.Snapshot) {
	if snap.Phase == game.PhaseRunning {
		return
	}

	vector.DrawFilledRect(screen, 0, 0,
		float32(s.cfg.Playfield.Width), float32(s.cfg.Playfield.Height),
		overlayTint, false)

	center := utils.Vec(s.cfg.Playfield.Width/2, s.cfg.Playfield.Height/2)
	switch snap.Phase {
	case game.PhasePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - SPACE to resume", int(center.X)-80, int(center.Y))
	case game.PhaseGameOver:
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("GAME OVER - score %d (best %d)", snap.Score, snap.HighScore),
			int(center.X)-110, int(center.Y)-20)
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("shots %d - best combo x%d", snap.Shots, snap.MaxCombo),
			int(center.X)-90, int(center.Y))
		ebitenutil.DebugPrintAt(screen, "R to restart", int(center.X)-40, int(center.Y)+20)
	}
}
