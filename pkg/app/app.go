// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开存档、
// 构建会话与场景，并实现 ebiten.Game 接口驱动固定步长的主循环。
package app

import (
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/aegisx/ricochet/pkg/components"
	"github.com/aegisx/ricochet/pkg/config"
	"github.com/aegisx/ricochet/pkg/game"
	"github.com/aegisx/ricochet/pkg/scenes"
	"github.com/aegisx/ricochet/pkg/utils"
)

// 固定模拟步长（秒）：每个 tick 推进相同的时间，
// 模拟结果与实际帧率解耦
const fixedDeltaTime = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameplayConfigPath 玩法配置文件路径，为空或加载失败时使用内置默认值
	GameplayConfigPath string
	// BirdStatsPath 鸟类属性配置文件路径，为空或加载失败时使用内置默认值
	BirdStatsPath string
	// Seed 随机种子，0 表示使用随机种子
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	session      *game.Session
	settings     *game.SettingsManager
	cfg          *config.GameplayConfig
	verbose      bool
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameplayCfg := loadGameplayConfig(cfg.GameplayConfigPath)
	birdCfg := loadBirdStats(cfg.BirdStatsPath)

	// 打开本地存档，失败时降级为仅内存模式
	dataManager, err := gdata.Open(gdata.Config{AppName: "ricochet-hunter"})
	if err != nil {
		log.Printf("[App] Warning: local storage unavailable, progress will not persist: %v", err)
		dataManager = nil
	}
	store := game.NewHighScoreManager(dataManager)
	settings := game.NewSettingsManager(dataManager)

	rng := rand.New(rand.NewSource(seedOrRandom(cfg.Seed)))

	session := game.NewSession(gameplayCfg, store)
	session.RenderMode = parseRenderMode(settings.GetSettings().BirdRenderMode)
	log.Printf("[App] Session created, high score: %d", session.HighScore)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(gameplayCfg, birdCfg, session, rng))

	return &App{
		sceneManager: sceneManager,
		session:      session,
		settings:     settings,
		cfg:          gameplayCfg,
		verbose:      cfg.Verbose,
	}, nil
}

// parseRenderMode 解析设置中的渲染模式名，未知值回退到精灵模式
func parseRenderMode(name string) components.BirdRenderMode {
	switch name {
	case "emoji":
		return components.RenderEmoji
	case "geometric":
		return components.RenderGeometric
	default:
		return components.RenderSprite
	}
}

// renderModeName 渲染模式的设置名
func renderModeName(mode components.BirdRenderMode) string {
	switch mode {
	case components.RenderEmoji:
		return "emoji"
	case components.RenderGeometric:
		return "geometric"
	default:
		return "sprite"
	}
}

// loadGameplayConfig 加载玩法配置，失败时回退到默认值
func loadGameplayConfig(path string) *config.GameplayConfig {
	if path == "" {
		return config.DefaultGameplayConfig()
	}
	cfg, err := config.LoadGameplayConfig(path)
	if err != nil {
		log.Printf("[App] Warning: %v, using default gameplay config", err)
		return config.DefaultGameplayConfig()
	}
	log.Printf("[App] Gameplay config loaded from %s", path)
	return cfg
}

// loadBirdStats 加载鸟类属性配置，失败时回退到默认值
func loadBirdStats(path string) *config.BirdStatsConfig {
	if path == "" {
		return config.DefaultBirdStats()
	}
	cfg, err := config.LoadBirdStats(path)
	if err != nil {
		log.Printf("[App] Warning: %v, using default bird stats", err)
		return config.DefaultBirdStats()
	}
	log.Printf("[App] Bird stats loaded from %s", path)
	return cfg
}

func seedOrRandom(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return rand.Int63()
}

// Update 更新游戏逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if utils.ReadKeys().Quit {
		return a.shutdown()
	}

	// F11 切换全屏并写入设置
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	a.sceneManager.Update(fixedDeltaTime)
	return nil
}

// shutdown 退出前落盘最高分和设置
func (a *App) shutdown() error {
	a.session.EnterGameOver()
	a.settings.SetBirdRenderMode(renderModeName(a.session.RenderMode))
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	return ebiten.Termination
}

// Draw 绘制游戏画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.cfg.Playfield.Width), int(a.cfg.Playfield.Height)
}

// version 构建时通过 ldflags 注入
var version = "dev"

// Version 返回当前构建的版本号
func Version() string { return version }
