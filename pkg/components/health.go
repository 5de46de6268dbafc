package components

// HealthComponent 存储实体的生命值信息
// 目前只挂在目标上；伤害结算不在模拟核心范围内，没有系统修改它。
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}
