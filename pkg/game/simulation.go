package game

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/systems"
)

// Stats 模拟运行统计，由事件监听器累计
type Stats struct {
	Ticks   int     // 已执行的帧数
	Elapsed float64 // 截断后的累计模拟时间（秒）
	Spawned int     // 发射的子弹数
	Expired int     // 生命周期到期的实体数（不含随父实体删除的子孙）
	Skipped int     // 冷却到期但未发射的次数
}

// Simulation 塔防模拟核心
//
// 持有实体管理器、事件分发器和按固定顺序执行的系统：
// 射手 → 子弹运动 → 生命周期 → 目标移动 → 清理标记删除的实体。
//
// Simulation 不是并发安全的，Tick 必须在同一个线程上调用。
type Simulation struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	config        *config.SimulationConfig

	shooterSystem        *systems.ShooterSystem
	projectileSystem     *systems.ProjectileSystem
	lifetimeSystem       *systems.LifetimeSystem
	targetMovementSystem *systems.TargetMovementSystem

	stats Stats
}

// NewSimulation 在已有实体管理器上创建模拟（不布置场景）
//
// 参数:
//   - em: 实体管理器
//   - cfg: 模拟配置，为 nil 时使用默认配置
//
// 返回:
//   - *Simulation: 模拟实例
//   - error: em 为 nil 或配置无效时返回错误
func NewSimulation(em *ecs.EntityManager, cfg *config.SimulationConfig) (*Simulation, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		cfg = config.DefaultSimulationConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	dispatcher := event.NewDispatcher()
	s := &Simulation{
		entityManager:        em,
		dispatcher:           dispatcher,
		config:               cfg,
		shooterSystem:        systems.NewShooterSystem(em, dispatcher, systems.ShooterSettingsFromConfig(cfg)),
		projectileSystem:     systems.NewProjectileSystem(em),
		lifetimeSystem:       systems.NewLifetimeSystem(em, dispatcher, cfg.Simulation.Verbose),
		targetMovementSystem: systems.NewTargetMovementSystem(em),
	}

	dispatcher.Subscribe(event.ProjectileSpawned, event.ListenerFunc(func(event.Event) { s.stats.Spawned++ }))
	dispatcher.Subscribe(event.ShotSkipped, event.ListenerFunc(func(event.Event) { s.stats.Skipped++ }))
	dispatcher.Subscribe(event.EntityExpired, event.ListenerFunc(func(event.Event) { s.stats.Expired++ }))

	return s, nil
}

// NewSimulationFromConfig 创建模拟并按 cfg.Scene 布置射手和目标
func NewSimulationFromConfig(cfg *config.SimulationConfig) (*Simulation, error) {
	s, err := NewSimulation(ecs.NewEntityManager(), cfg)
	if err != nil {
		return nil, err
	}
	if err := s.SpawnScene(); err != nil {
		return nil, err
	}
	return s, nil
}

// SpawnScene 按配置创建初始射手和目标
func (s *Simulation) SpawnScene() error {
	cfg := s.config

	for i, p := range cfg.Scene.Shooters {
		if _, err := entities.NewShooter(s.entityManager, p.Position, p.Yaw, cfg.Shooter.Cooldown, cfg.Shooter.SpawnOffset); err != nil {
			return fmt.Errorf("failed to spawn shooter %d: %w", i, err)
		}
	}

	for i, p := range cfg.Scene.Targets {
		if _, err := entities.NewTarget(s.entityManager, p.Position, cfg.TargetSpeed(p), cfg.Target.Axis, cfg.Target.Health); err != nil {
			return fmt.Errorf("failed to spawn target %d: %w", i, err)
		}
	}

	log.Printf("[Simulation] 场景布置完成: %d 个射手, %d 个目标", len(cfg.Scene.Shooters), len(cfg.Scene.Targets))
	return nil
}

// Tick 推进一帧
//
// deltaTime 为负数或 NaN 时按 0 处理；simulation.maxDeltaTime > 0 时超出部分被截断，
// 为 0（默认）时不截断。
// 本帧创建的子弹在同一帧内就会被移动和计时；
// 本帧删除的实体立即从查询中消失，帧末统一清理。
func (s *Simulation) Tick(deltaTime float64) {
	deltaTime = s.clampDeltaTime(deltaTime)

	s.shooterSystem.Update(deltaTime)
	s.projectileSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.targetMovementSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()

	s.stats.Ticks++
	s.stats.Elapsed += deltaTime
}

func (s *Simulation) clampDeltaTime(deltaTime float64) float64 {
	if deltaTime < 0 || math.IsNaN(deltaTime) {
		return 0
	}
	if maxDt := s.config.Simulation.MaxDeltaTime; maxDt > 0 && deltaTime > maxDt {
		if s.config.Simulation.Verbose {
			log.Printf("[Simulation] 帧间隔 %.3fs 超过上限，截断为 %.3fs", deltaTime, maxDt)
		}
		return maxDt
	}
	return deltaTime
}

// EntityManager 返回模拟使用的实体管理器
func (s *Simulation) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Dispatcher 返回事件分发器，可用于订阅发射/过期事件
func (s *Simulation) Dispatcher() *event.Dispatcher {
	return s.dispatcher
}

// Config 返回模拟配置
func (s *Simulation) Config() *config.SimulationConfig {
	return s.config
}

// Stats 返回统计快照
func (s *Simulation) Stats() Stats {
	return s.stats
}

// ProjectileCount 返回当前存活的子弹数量
func (s *Simulation) ProjectileCount() int {
	return len(ecs.GetEntitiesWith1[*components.ProjectileComponent](s.entityManager))
}
