package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/game"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// 俯视图：世界 X → 屏幕 X，世界 Z → 屏幕 Y
	pixelsPerUnit = 100.0
)

var (
	configPath = flag.String("config", "", "模拟配置文件路径（默认使用内嵌的 data/simulation.yaml）")
	verbose    = flag.Bool("verbose", false, "输出每次发射/过期的日志")
)

var (
	backgroundColor = color.RGBA{R: 40, G: 44, B: 52, A: 255}
	gridColor       = color.RGBA{R: 60, G: 66, B: 78, A: 255}
	shooterColor    = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	targetColor     = color.RGBA{R: 230, G: 80, B: 80, A: 255}
	projectileColor = color.RGBA{R: 255, G: 220, B: 60, A: 255}
)

// Game 实现 ebiten.Game，以 ebiten 的固定 TPS 作为模拟时钟
type Game struct {
	sim *game.Simulation
}

// Update 每个 tick 推进一帧模拟
func (g *Game) Update() error {
	g.sim.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制俯视调试视图
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for x := 0; x <= screenWidth; x += pixelsPerUnit {
		vector.StrokeLine(screen, float32(x), 0, float32(x), screenHeight, 1, gridColor, false)
	}
	for y := 0; y <= screenHeight; y += pixelsPerUnit {
		vector.StrokeLine(screen, 0, float32(y), screenWidth, float32(y), 1, gridColor, false)
	}

	em := g.sim.EntityManager()

	for _, id := range ecs.GetEntitiesWith2[*components.ShooterComponent, *components.TransformComponent](em) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		x, y := worldToScreen(transform.Translation)
		vector.DrawFilledRect(screen, x-12, y-12, 24, 24, shooterColor, true)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](em) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		x, y := worldToScreen(transform.Translation)
		vector.DrawFilledCircle(screen, x, y, 10, targetColor, true)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.TransformComponent](em) {
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		x, y := worldToScreen(transform.Translation)
		vector.DrawFilledCircle(screen, x, y, 4, projectileColor, true)
	}

	stats := g.sim.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS: %0.1f\nTime: %.1fs\nEntities: %d\nProjectiles: %d\nSpawned: %d  Expired: %d  Skipped: %d",
		ebiten.ActualTPS(), stats.Elapsed, em.EntityCount(), g.sim.ProjectileCount(),
		stats.Spawned, stats.Expired, stats.Skipped,
	))
}

// Layout 返回逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func worldToScreen(p mgl64.Vec3) (float32, float32) {
	return float32(screenWidth/2 + p.X()*pixelsPerUnit), float32(screenHeight/2 + p.Z()*pixelsPerUnit)
}

func loadConfig() (*config.SimulationConfig, error) {
	if *configPath != "" {
		return config.LoadSimulationConfig(*configPath)
	}
	return config.ParseSimulationConfig(defaultConfigYAML)
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *verbose {
		cfg.Simulation.Verbose = true
	}

	sim, err := game.NewSimulationFromConfig(cfg)
	if err != nil {
		log.Fatalf("创建模拟失败: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Tower Defense")

	if err := ebiten.RunGame(&Game{sim: sim}); err != nil {
		log.Fatal(err)
	}
}
