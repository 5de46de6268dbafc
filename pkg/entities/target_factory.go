package entities

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// NewTarget 创建目标（敌人）实体
// health <= 0 时不挂 HealthComponent
func NewTarget(em *ecs.EntityManager, position mgl64.Vec3, speed float64, axis mgl64.Vec3, health int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.TransformComponent{
		Translation: position,
		Rotation:    mgl64.QuatIdent(),
	})
	em.AddComponent(entityID, &components.TargetComponent{
		Speed: speed,
		Axis:  axis,
	})
	if health > 0 {
		em.AddComponent(entityID, &components.HealthComponent{
			CurrentHealth: health,
			MaxHealth:     health,
		})
	}

	return entityID, nil
}
