package systems

import (
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/utils"
)

// TargetMovementSystem 目标沿固定轴匀速移动，没有边界处理
type TargetMovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewTargetMovementSystem 创建目标移动系统
func NewTargetMovementSystem(em *ecs.EntityManager) *TargetMovementSystem {
	return &TargetMovementSystem{entityManager: em}
}

// Update 平移所有目标
func (s *TargetMovementSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	targets := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](s.entityManager)
	for _, id := range targets {
		target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if !ok || target.Speed == 0 {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		axis, valid := utils.SafeNormalize(target.Axis)
		if !valid {
			continue
		}
		transform.Translation = transform.Translation.Add(axis.Mul(target.Speed * deltaTime))
	}
}
