package entities

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// NewShooter 创建射手（防御塔）实体
//
// 参数:
//   - em: 实体管理器
//   - position: 世界坐标
//   - yawDegrees: 绕 Y 轴朝向（角度）
//   - cooldown: 发射周期（秒）
//   - spawnOffset: 子弹出生点局部偏移
func NewShooter(em *ecs.EntityManager, position mgl64.Vec3, yawDegrees, cooldown float64, spawnOffset mgl64.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cooldown <= 0 {
		return 0, fmt.Errorf("shooter cooldown must be > 0, got %.3f", cooldown)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.TransformComponent{
		Translation: position,
		Rotation:    mgl64.QuatRotate(mgl64.DegToRad(yawDegrees), mgl64.Vec3{0, 1, 0}),
	})
	em.AddComponent(entityID, components.NewShooterComponent(cooldown, spawnOffset))

	return entityID, nil
}
