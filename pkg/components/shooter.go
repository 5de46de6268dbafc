package components

import "github.com/go-gl/mathgl/mgl64"

// ShooterComponent 防御塔（射手）组件
//
// Cooldown 为循环计时器，每次到期尝试发射一枚子弹；
// SpawnOffset 是子弹出生点相对塔位置的局部偏移。
type ShooterComponent struct {
	Cooldown    Timer
	SpawnOffset mgl64.Vec3
	ShotsFired  int // 已发射子弹数（统计用）
}

// NewShooterComponent 创建射手组件
func NewShooterComponent(cooldown float64, spawnOffset mgl64.Vec3) *ShooterComponent {
	return &ShooterComponent{
		Cooldown:    NewTimer("shooter_cooldown", cooldown, TimerModeRepeating),
		SpawnOffset: spawnOffset,
	}
}
