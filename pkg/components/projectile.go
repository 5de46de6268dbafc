package components

import (
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectileComponent 子弹组件
//
// Direction 创建时不保证是单位向量，ProjectileSystem 每帧重新归一化，
// 因此其他系统可以在飞行途中直接修改 Direction 改变方向。
type ProjectileComponent struct {
	Direction mgl64.Vec3
	Speed     float64      // 单位/秒
	SourceID  ecs.EntityID // 发射该子弹的射手，0 表示未知
}
