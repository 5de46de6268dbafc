package systems

import (
	"log"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

// ShooterSettings 射手系统的发射参数
type ShooterSettings struct {
	ProjectileSpeed    float64
	ProjectileLifetime float64
	Scene              components.SceneHandle // 注入的子弹场景资源句柄
	OrientSpawnOffset  bool                   // 出生点偏移是否随射手朝向旋转
	AttachToShooter    bool                   // 子弹是否挂为射手的子实体
	NoTargetPolicy     config.NoTargetPolicy
	FixedDirection     mgl64.Vec3 // NoTargetFixedDirection 时的世界方向
	Verbose            bool
}

// ShooterSettingsFromConfig 从模拟配置提取射手系统参数
func ShooterSettingsFromConfig(cfg *config.SimulationConfig) ShooterSettings {
	return ShooterSettings{
		ProjectileSpeed:    cfg.Projectile.Speed,
		ProjectileLifetime: cfg.Projectile.Lifetime,
		Scene:              components.SceneHandle(cfg.Projectile.Scene),
		OrientSpawnOffset:  cfg.Shooter.OrientSpawnOffset,
		AttachToShooter:    cfg.Projectile.AttachToShooter,
		NoTargetPolicy:     cfg.Targeting.NoTargetPolicy,
		FixedDirection:     cfg.Targeting.FixedDirection,
		Verbose:            cfg.Simulation.Verbose,
	}
}

// TargetCandidate 索敌候选：实体句柄 + 世界坐标
type TargetCandidate struct {
	ID       ecs.EntityID
	Position mgl64.Vec3
}

// ShooterSystem 冷却/索敌系统
//
// 每帧推进所有射手的冷却计时器；计时器到期（边沿触发）时
// 选择离出生点最近的目标并发射一枚子弹。
type ShooterSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	settings      ShooterSettings
}

// NewShooterSystem 创建射手系统
//
// 参数:
//   - em: 实体管理器
//   - dispatcher: 事件分发器，可为 nil
//   - settings: 发射参数
func NewShooterSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, settings ShooterSettings) *ShooterSystem {
	return &ShooterSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		settings:      settings,
	}
}

// Update 更新所有射手
func (s *ShooterSystem) Update(deltaTime float64) {
	shooters := ecs.GetEntitiesWith2[*components.ShooterComponent, *components.TransformComponent](s.entityManager)
	if len(shooters) == 0 {
		return
	}

	// 本帧目标快照：射手系统只创建子弹，不会改变目标集合
	targets := s.collectTargets()

	for _, id := range shooters {
		shooter, ok := ecs.GetComponent[*components.ShooterComponent](s.entityManager, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if !shooter.Cooldown.Advance(deltaTime) {
			continue
		}

		s.fire(id, shooter, transform, targets)
	}
}

func (s *ShooterSystem) collectTargets() []TargetCandidate {
	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](s.entityManager)
	candidates := make([]TargetCandidate, 0, len(ids))
	for _, id := range ids {
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}
		candidates = append(candidates, TargetCandidate{ID: id, Position: transform.Translation})
	}
	return candidates
}

// fire 处理一次冷却到期
func (s *ShooterSystem) fire(shooterID ecs.EntityID, shooter *components.ShooterComponent, transform *components.TransformComponent, targets []TargetCandidate) {
	spawnPoint := transform.TransformPoint(shooter.SpawnOffset, s.settings.OrientSpawnOffset)

	var (
		direction mgl64.Vec3
		targetID  ecs.EntityID
		aimed     bool
	)

	if target, found := FindNearestTarget(spawnPoint, targets); found {
		candidate := target.Position.Sub(spawnPoint)
		if _, valid := utils.SafeNormalize(candidate); valid {
			direction = candidate
			targetID = target.ID
			aimed = true
		} else {
			log.Printf("[ShooterSystem] ⚠️ 射手 %d 的最近目标 %d 与出生点重合，视为无有效目标", shooterID, target.ID)
		}
	}

	if !aimed {
		if s.settings.NoTargetPolicy != config.NoTargetFixedDirection {
			s.skip(shooterID, "no valid target")
			return
		}
		direction = s.settings.FixedDirection
		if _, valid := utils.SafeNormalize(direction); !valid {
			s.skip(shooterID, "degenerate fixed direction")
			return
		}
	}

	var parent ecs.EntityID
	if s.settings.AttachToShooter {
		parent = shooterID
	}

	projectileID, err := entities.NewProjectile(s.entityManager, entities.ProjectileParams{
		Position:  spawnPoint,
		Direction: direction,
		Speed:     s.settings.ProjectileSpeed,
		Lifetime:  s.settings.ProjectileLifetime,
		Scene:     s.settings.Scene,
		SourceID:  shooterID,
		Parent:    parent,
	})
	if err != nil {
		log.Printf("[ShooterSystem] ⚠️ 射手 %d 创建子弹失败: %v", shooterID, err)
		s.skip(shooterID, err.Error())
		return
	}

	shooter.ShotsFired++

	if s.settings.Verbose {
		log.Printf("[ShooterSystem] 🎯 射手 %d 发射子弹 %d -> 目标 %d, 出生点=%v, 方向=%v",
			shooterID, projectileID, targetID, spawnPoint, direction)
	}

	s.dispatcher.Dispatch(event.Event{
		Type: event.ProjectileSpawned,
		Data: event.ProjectileSpawnedData{
			ShooterID:    shooterID,
			ProjectileID: projectileID,
			TargetID:     targetID,
			SpawnPoint:   spawnPoint,
			Direction:    direction,
		},
	})
}

func (s *ShooterSystem) skip(shooterID ecs.EntityID, reason string) {
	if s.settings.Verbose {
		log.Printf("[ShooterSystem] 射手 %d 跳过发射: %s", shooterID, reason)
	}
	s.dispatcher.Dispatch(event.Event{
		Type: event.ShotSkipped,
		Data: event.ShotSkippedData{ShooterID: shooterID, Reason: reason},
	})
}

// FindNearestTarget 线性扫描，返回离 from 欧氏距离最近的候选
//
// 距离相等时保留先遇到的候选；调用方按 EntityID 升序传入时即为 ID 最小者。
// 坐标含 NaN/Inf 的候选被忽略。candidates 为空时返回 false。
func FindNearestTarget(from mgl64.Vec3, candidates []TargetCandidate) (TargetCandidate, bool) {
	var (
		nearest TargetCandidate
		found   bool
		minDist float64
	)
	for _, c := range candidates {
		if !utils.IsFiniteVec3(c.Position) {
			continue
		}
		dist := c.Position.Sub(from).Len()
		if !found || dist < minDist {
			nearest = c
			minDist = dist
			found = true
		}
	}
	return nearest, found
}
