package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 实体的世界空间位置与朝向
// 朝向只对塔和目标有意义，由渲染层消费；子弹只使用 Translation。
type TransformComponent struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// NewTransform 创建无旋转的变换组件
func NewTransform(x, y, z float64) *TransformComponent {
	return &TransformComponent{
		Translation: mgl64.Vec3{x, y, z},
		Rotation:    mgl64.QuatIdent(),
	}
}

// TransformPoint 将局部偏移变换到世界空间
// oriented=false 时忽略旋转，直接相加
func (t *TransformComponent) TransformPoint(local mgl64.Vec3, oriented bool) mgl64.Vec3 {
	if oriented {
		local = t.Rotation.Normalize().Rotate(local)
	}
	return t.Translation.Add(local)
}
