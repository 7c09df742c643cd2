// bounce 是一个最小的弹跳球演示
//
// 模拟在后台 goroutine 以固定 60Hz 步长推进，通过 atomic.Pointer
// 把不可变快照交给渲染侧，渲染帧率与模拟步长完全解耦。
// 主游戏使用单线程模拟，这里演示快照交接的并发形态。
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/utils"
)

const ballRadius = 25.0

// frame 单帧的不可变渲染快照
type frame struct {
	Pos   utils.Vector2
	Speed float64
	Steps uint64
}

// sim 弹跳球模拟，只被模拟 goroutine 触碰
type sim struct {
	cfg   *config.GameplayConfig
	pos   utils.Vector2
	vel   utils.Vector2
	steps uint64

	latest *atomic.Pointer[frame]
	kicks  chan utils.Vector2
}

func newSim(cfg *config.GameplayConfig) *sim {
	s := &sim{
		cfg:    cfg,
		pos:    utils.Vec(cfg.Playfield.Width/2, cfg.Playfield.Height/3),
		vel:    utils.Vec(250, -150),
		latest: &atomic.Pointer[frame]{},
		kicks:  make(chan utils.Vector2, 8),
	}
	s.publish()
	return s
}

// run 以固定步长推进模拟，直到 stop 关闭
func (s *sim) run(stop <-chan struct{}) {
	const dt = 1.0 / 60.0
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case kick := <-s.kicks:
			s.vel = s.vel.Add(kick)
		case <-ticker.C:
			s.step(dt)
			s.publish()
		}
	}
}

func (s *sim) step(dt float64) {
	phys := s.cfg.Physics

	s.vel.Y += phys.Gravity * dt
	s.vel = s.vel.Scale(phys.AirFriction)
	s.pos = s.pos.Add(s.vel.Scale(dt))

	w, h := s.cfg.Playfield.Width, s.cfg.Playfield.Height
	if s.pos.Y+ballRadius >= h {
		s.pos.Y = h - ballRadius
		s.vel.Y = -math.Abs(s.vel.Y) * phys.BounceDampening
		s.vel.X *= phys.GroundFriction
	} else if s.pos.Y-ballRadius <= 0 {
		s.pos.Y = ballRadius
		s.vel.Y = math.Abs(s.vel.Y) * phys.BounceDampening
	}
	if s.pos.X-ballRadius <= 0 {
		s.pos.X = ballRadius
		s.vel.X = math.Abs(s.vel.X) * phys.BounceDampening
	} else if s.pos.X+ballRadius >= w {
		s.pos.X = w - ballRadius
		s.vel.X = -math.Abs(s.vel.X) * phys.BounceDampening
	}

	s.steps++
}

// publish 发布新的不可变快照
// 渲染侧永远读到完整的一帧，不需要锁
func (s *sim) publish() {
	s.latest.Store(&frame{
		Pos:   s.pos,
		Speed: s.vel.Length(),
		Steps: s.steps,
	})
}

// demo 实现 ebiten.Game，只消费快照
type demo struct {
	sim  *sim
	stop chan struct{}

	dragging bool
	anchor   utils.Vector2
}

func (d *demo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		close(d.stop)
		return ebiten.Termination
	}

	// 拉弓发射：按下记录锚点，松开时沿拉弓反方向给冲量
	x, y := ebiten.CursorPosition()
	cursor := utils.Vec(float64(x), float64(y))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		d.dragging = true
		d.anchor = cursor
	}
	if d.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		d.dragging = false
		pull := d.anchor.Sub(cursor)
		if pull.Length() > 10 {
			kick := pull.Normalize().Scale(math.Min(pull.Length()/200, 1) * 1200)
			select {
			case d.sim.kicks <- kick:
			default:
				// 模拟侧繁忙时丢弃冲量
			}
		}
	}
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 135, G: 206, B: 235, A: 255})

	f := d.sim.latest.Load()
	vector.DrawFilledCircle(screen, float32(f.Pos.X), float32(f.Pos.Y), ballRadius,
		color.RGBA{R: 220, G: 60, B: 60, A: 255}, true)

	if d.dragging {
		x, y := ebiten.CursorPosition()
		vector.StrokeLine(screen,
			float32(d.anchor.X), float32(d.anchor.Y), float32(x), float32(y),
			2, color.RGBA{R: 139, G: 69, B: 19, A: 255}, true)
	}

	ebitenutil.DebugPrint(screen,
		fmt.Sprintf("drag and release to kick, ESC to quit\nspeed %.0f  steps %d", f.Speed, f.Steps))
}

func (d *demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 800, 600
}

func main() {
	cfg := config.DefaultGameplayConfig()

	s := newSim(cfg)
	stop := make(chan struct{})
	go s.run(stop)

	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowTitle("Bounce Demo")

	if err := ebiten.RunGame(&demo{sim: s, stop: stop}); err != nil {
		log.Fatal(err)
	}
}
