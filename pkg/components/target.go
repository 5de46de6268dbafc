package components

import "github.com/go-gl/mathgl/mgl64"

// TargetComponent 标识可被射手瞄准的实体（敌人）
// 目标沿固定轴以恒定速度移动，没有边界处理。
type TargetComponent struct {
	Speed float64    // 移动速度（单位/秒）
	Axis  mgl64.Vec3 // 移动方向，使用前归一化
}
