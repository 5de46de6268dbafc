// towersim 无窗口运行塔防模拟，按固定步长推进并每模拟秒输出一次统计
//
// 用法:
//
//	go run ./cmd/towersim -config data/simulation.yaml -ticks 600 -dt 0.016
package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/game"
)

var (
	// 命令行参数
	configPath = flag.String("config", "data/simulation.yaml", "模拟配置文件路径")
	ticks      = flag.Int("ticks", 600, "模拟帧数")
	deltaTime  = flag.Float64("dt", 1.0/60.0, "每帧时间步长（秒）")
	verbose    = flag.Bool("verbose", false, "输出每次发射/过期的日志")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg, err := config.LoadSimulationConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("[towersim] 加载配置失败: %v", err)
		}
		log.Printf("[towersim] ⚠️ 配置文件 %s 不存在，使用默认配置", *configPath)
		cfg = config.DefaultSimulationConfig()
	}
	if *verbose {
		cfg.Simulation.Verbose = true
	}

	sim, err := game.NewSimulationFromConfig(cfg)
	if err != nil {
		log.Fatalf("[towersim] 创建模拟失败: %v", err)
	}

	log.Printf("[towersim] 开始模拟: %d 帧, dt=%.4fs", *ticks, *deltaTime)

	nextReport := 1.0
	for i := 0; i < *ticks; i++ {
		sim.Tick(*deltaTime)

		stats := sim.Stats()
		if stats.Elapsed >= nextReport {
			log.Printf("[towersim] t=%.2fs 实体=%d 子弹=%d 发射=%d 过期=%d 跳过=%d",
				stats.Elapsed, sim.EntityManager().EntityCount(), sim.ProjectileCount(),
				stats.Spawned, stats.Expired, stats.Skipped)
			nextReport += 1.0
		}
	}

	stats := sim.Stats()
	log.Printf("[towersim] 完成: %d 帧, 模拟时间 %.2fs, 发射 %d, 过期 %d, 跳过 %d",
		stats.Ticks, stats.Elapsed, stats.Spawned, stats.Expired, stats.Skipped)
}
