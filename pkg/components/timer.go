package components

import "math"

// TimerMode 计时器模式
type TimerMode int

const (
	// TimerModeOnce 一次性计时器：到期触发一次后保持完成状态，不再重启
	TimerModeOnce TimerMode = iota
	// TimerModeRepeating 循环计时器：每累计 Duration 秒触发一次并自动重启
	TimerModeRepeating
)

// timerEpsilon 吸收浮点累加误差（如 0.1 累加 10 次 = 0.9999999999999999）
const timerEpsilon = 1e-9

// Timer 通用计时器值类型
// 用于攻击冷却（循环）和实体生命周期（一次性）
//
// 每个实体持有自己的 Timer 值，由同一个全局时钟推进。
type Timer struct {
	Name     string    // 计时器名称，如 "shooter_cooldown"，仅用于日志
	Duration float64   // 周期/时长（秒）
	Elapsed  float64   // 当前周期已累计时间（秒），永不为负
	Mode     TimerMode // 一次性 / 循环
	Finished bool      // 一次性计时器是否已到期
}

// NewTimer 创建计时器
func NewTimer(name string, duration float64, mode TimerMode) Timer {
	return Timer{
		Name:     name,
		Duration: duration,
		Mode:     mode,
	}
}

// Advance 推进计时器并返回本次是否"刚刚到期"（边沿触发）
//
// 规则:
//   - deltaTime 为负数或 NaN 时按 0 处理
//   - 每次调用最多触发一次
//   - 循环模式保留超出部分，保证按累计时间精确周期触发；
//     单次 deltaTime 跨越多个周期时，多出的周期被丢弃
//   - 一次性模式触发后 Finished=true，之后永远返回 false
func (t *Timer) Advance(deltaTime float64) bool {
	if deltaTime < 0 || math.IsNaN(deltaTime) {
		deltaTime = 0
	}
	if t.Mode == TimerModeOnce && t.Finished {
		return false
	}

	t.Elapsed += deltaTime
	if t.Elapsed+timerEpsilon < t.Duration {
		return false
	}

	if t.Mode == TimerModeOnce {
		t.Elapsed = t.Duration
		t.Finished = true
		return true
	}

	t.Elapsed -= t.Duration
	if t.Elapsed < 0 {
		t.Elapsed = 0
	}
	if t.Duration > 0 && t.Elapsed >= t.Duration {
		t.Elapsed = math.Mod(t.Elapsed, t.Duration)
	}
	return true
}

// Remaining 返回距离下次到期的剩余时间，最小为 0
func (t *Timer) Remaining() float64 {
	if t.Finished {
		return 0
	}
	return math.Max(0, t.Duration-t.Elapsed)
}

// Fraction 返回当前周期完成比例 [0, 1]
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return math.Min(1, t.Elapsed/t.Duration)
}

// Reset 重置计时器到初始状态
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.Finished = false
}
