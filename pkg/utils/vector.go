package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinDirectionLength 小于该长度的方向向量视为退化（零向量）
const MinDirectionLength = 1e-9

// IsFiniteVec3 检查向量的每个分量都不是 NaN/Inf
func IsFiniteVec3(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// SafeNormalize 归一化方向向量
//
// 返回:
//   - mgl64.Vec3: 单位向量；退化输入返回零向量
//   - bool: 输入是否可用（非零、有限）
//
// mgl64.Vec3.Normalize 对零向量会产生 NaN，这里统一拦截。
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	if !IsFiniteVec3(v) {
		return mgl64.Vec3{}, false
	}
	length := v.Len()
	if length < MinDirectionLength || math.IsInf(length, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / length), true
}

// ApproxEqualVec3 按绝对误差比较两个向量（差向量长度小于 tolerance）
//
// mgl64.Vec3.ApproxEqualThreshold 使用相对误差，期望分量为 0 时
// 四元数旋转产生的 1e-16 级舍入也会判为不相等。
func ApproxEqualVec3(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() < tolerance
}
