package systems

import (
	"log"
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/utils"
)

// ProjectileSystem 子弹运动学系统
// 每帧按 normalize(Direction) * Speed * deltaTime 平移子弹
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	// 已报告过退化方向的子弹，避免每帧刷日志
	degenerate map[ecs.EntityID]bool
}

// NewProjectileSystem 创建子弹运动系统
func NewProjectileSystem(em *ecs.EntityManager) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		degenerate:    make(map[ecs.EntityID]bool),
	}
}

// Update 更新所有子弹位置
//
// 方向每帧重新归一化（不缓存），其他系统可以在飞行中直接修改 Direction。
// 零向量或非有限方向的子弹本帧不移动。
func (s *ProjectileSystem) Update(deltaTime float64) {
	for id := range s.degenerate {
		if !s.entityManager.IsAlive(id) {
			delete(s.degenerate, id)
		}
	}

	if deltaTime <= 0 || math.IsNaN(deltaTime) {
		return
	}

	projectiles := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.TransformComponent](s.entityManager)
	for _, id := range projectiles {
		proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		direction, valid := utils.SafeNormalize(proj.Direction)
		if !valid || math.IsNaN(proj.Speed) || math.IsInf(proj.Speed, 0) {
			if !s.degenerate[id] {
				log.Printf("[ProjectileSystem] ⚠️ 子弹 %d 方向/速度无效 (direction=%v, speed=%v)，跳过移动", id, proj.Direction, proj.Speed)
				s.degenerate[id] = true
			}
			continue
		}
		delete(s.degenerate, id)

		transform.Translation = transform.Translation.Add(direction.Mul(proj.Speed * deltaTime))
	}
}
