package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体(如子弹)
//
// Timer 必须是一次性模式；到期后实体及其子实体被 LifetimeSystem 删除。
type LifetimeComponent struct {
	Timer Timer
}

// NewLifetimeComponent 创建指定时长（秒）的生命周期组件
func NewLifetimeComponent(maxLifetime float64) *LifetimeComponent {
	return &LifetimeComponent{
		Timer: NewTimer("lifetime", maxLifetime, TimerModeOnce),
	}
}
