package entities

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectileParams 创建子弹所需的参数
type ProjectileParams struct {
	Position  mgl64.Vec3             // 世界坐标出生点
	Direction mgl64.Vec3             // 飞行方向，不要求单位长度
	Speed     float64                // 单位/秒
	Lifetime  float64                // 一次性生命周期（秒）
	Scene     components.SceneHandle // 渲染资源句柄，原样透传
	SourceID  ecs.EntityID           // 发射者
	Parent    ecs.EntityID           // 父实体（0 表示不挂载）
}

// NewProjectile 创建子弹实体
//
// 子弹以恒定速度沿 Direction 飞行，由 LifetimeComponent 控制自动销毁。
// Parent 非 0 时子弹挂到父实体下，仅用于层级变换和级联删除；
// Position 始终是世界坐标。
//
// 返回:
//   - ecs.EntityID: 创建的子弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewProjectile(em *ecs.EntityManager, p ProjectileParams) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if p.Lifetime <= 0 {
		return 0, fmt.Errorf("projectile lifetime must be > 0, got %.3f", p.Lifetime)
	}

	entityID := em.CreateEntity()

	if p.Parent != 0 {
		if err := em.SetParent(entityID, p.Parent); err != nil {
			em.DestroyEntity(entityID)
			return 0, fmt.Errorf("failed to attach projectile to %d: %w", p.Parent, err)
		}
	}

	em.AddComponent(entityID, &components.TransformComponent{
		Translation: p.Position,
		Rotation:    mgl64.QuatIdent(),
	})

	em.AddComponent(entityID, &components.ProjectileComponent{
		Direction: p.Direction,
		Speed:     p.Speed,
		SourceID:  p.SourceID,
	})

	em.AddComponent(entityID, components.NewLifetimeComponent(p.Lifetime))

	em.AddComponent(entityID, &components.SceneComponent{
		Handle: p.Scene,
	})

	return entityID, nil
}
