package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// NoTargetPolicy 冷却到期但没有有效目标时的处理策略
type NoTargetPolicy string

const (
	// NoTargetSkip 跳过本次发射（默认）
	NoTargetSkip NoTargetPolicy = "skip"
	// NoTargetFixedDirection 沿固定方向发射
	NoTargetFixedDirection NoTargetPolicy = "fixed_direction"
)

// SimulationConfig 塔防模拟配置
//
// 配置文件位置: data/simulation.yaml
// 未出现在文件中的字段保持 DefaultSimulationConfig 的默认值。
type SimulationConfig struct {
	Simulation SimulationSection `yaml:"simulation"`
	Shooter    ShooterConfig     `yaml:"shooter"`
	Projectile ProjectileConfig  `yaml:"projectile"`
	Targeting  TargetingConfig   `yaml:"targeting"`
	Target     TargetConfig      `yaml:"target"`
	Scene      SceneConfig       `yaml:"scene"`
}

// SimulationSection 时钟与日志
type SimulationSection struct {
	// MaxDeltaTime 单帧最大时间步长（秒），超出部分被截断，防止卡顿后跳帧
	// <= 0 表示不截断（默认），保证冷却按累计时间精确触发
	MaxDeltaTime float64 `yaml:"maxDeltaTime"`
	// Verbose 是否输出每次发射/过期的日志
	Verbose bool `yaml:"verbose"`
}

// ShooterConfig 射手（防御塔）配置
type ShooterConfig struct {
	// Cooldown 发射周期（秒）
	Cooldown float64 `yaml:"cooldown"`
	// SpawnOffset 子弹出生点相对射手的局部偏移
	SpawnOffset mgl64.Vec3 `yaml:"spawnOffset"`
	// OrientSpawnOffset 偏移是否随射手朝向旋转
	OrientSpawnOffset bool `yaml:"orientSpawnOffset"`
}

// ProjectileConfig 子弹配置
type ProjectileConfig struct {
	Speed           float64 `yaml:"speed"`           // 单位/秒
	Lifetime        float64 `yaml:"lifetime"`        // 秒
	AttachToShooter bool    `yaml:"attachToShooter"` // 是否作为射手的子实体
	Scene           string  `yaml:"scene"`           // 场景资源句柄，原样透传
}

// TargetingConfig 索敌配置
type TargetingConfig struct {
	NoTargetPolicy NoTargetPolicy `yaml:"noTargetPolicy"`
	// FixedDirection 固定方向射击时使用的方向（世界空间）
	FixedDirection mgl64.Vec3 `yaml:"fixedDirection"`
}

// TargetConfig 目标（敌人）默认属性
type TargetConfig struct {
	Speed  float64    `yaml:"speed"`
	Axis   mgl64.Vec3 `yaml:"axis"`
	Health int        `yaml:"health"`
}

// SceneConfig 初始场景布置
type SceneConfig struct {
	Shooters []ShooterPlacement `yaml:"shooters"`
	Targets  []TargetPlacement  `yaml:"targets"`
}

// ShooterPlacement 单个射手的摆放
type ShooterPlacement struct {
	Position mgl64.Vec3 `yaml:"position"`
	// Yaw 绕 Y 轴的朝向（角度）
	Yaw float64 `yaml:"yaw"`
}

// TargetPlacement 单个目标的摆放
type TargetPlacement struct {
	Position mgl64.Vec3 `yaml:"position"`
	// Speed 覆盖 target.speed，未设置时使用默认值
	Speed *float64 `yaml:"speed,omitempty"`
}

// DefaultSimulationConfig 返回默认配置
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Simulation: SimulationSection{
			MaxDeltaTime: 0,
		},
		Shooter: ShooterConfig{
			Cooldown:          1.0,
			SpawnOffset:       mgl64.Vec3{0, 0.2, 0.5},
			OrientSpawnOffset: true,
		},
		Projectile: ProjectileConfig{
			Speed:           3.0,
			Lifetime:        0.5,
			AttachToShooter: false,
			Scene:           "scenes/bullet",
		},
		Targeting: TargetingConfig{
			NoTargetPolicy: NoTargetSkip,
			FixedDirection: mgl64.Vec3{0, 0, 1},
		},
		Target: TargetConfig{
			Speed:  0.3,
			Axis:   mgl64.Vec3{1, 0, 0},
			Health: 3,
		},
		Scene: SceneConfig{
			Shooters: []ShooterPlacement{
				{Position: mgl64.Vec3{0, 0, 0}},
			},
			Targets: []TargetPlacement{
				{Position: mgl64.Vec3{-2, 0.4, 2.5}},
				{Position: mgl64.Vec3{-3, 0.4, 2.5}},
			},
		},
	}
}

// LoadSimulationConfig 加载模拟配置
//
// 参数:
//   - path: 配置文件路径（如 "data/simulation.yaml"）
//
// 返回:
//   - *SimulationConfig: 合并默认值后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}
	return ParseSimulationConfig(data)
}

// ParseSimulationConfig 从 YAML 数据解析配置（用于嵌入资源和测试）
func ParseSimulationConfig(data []byte) (*SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *SimulationConfig) Validate() error {
	if math.IsNaN(c.Simulation.MaxDeltaTime) || c.Simulation.MaxDeltaTime < 0 {
		return fmt.Errorf("simulation.maxDeltaTime must be >= 0 (0 disables clamping), got %.3f", c.Simulation.MaxDeltaTime)
	}
	if c.Shooter.Cooldown <= 0 {
		return fmt.Errorf("shooter.cooldown must be > 0, got %.3f", c.Shooter.Cooldown)
	}
	if c.Projectile.Speed < 0 {
		return fmt.Errorf("projectile.speed must be >= 0, got %.3f", c.Projectile.Speed)
	}
	if c.Projectile.Lifetime <= 0 {
		return fmt.Errorf("projectile.lifetime must be > 0, got %.3f", c.Projectile.Lifetime)
	}

	switch c.Targeting.NoTargetPolicy {
	case NoTargetSkip:
	case NoTargetFixedDirection:
		if c.Targeting.FixedDirection.Len() == 0 {
			return fmt.Errorf("targeting.fixedDirection must be non-zero for policy %q", NoTargetFixedDirection)
		}
	default:
		return fmt.Errorf("unknown targeting.noTargetPolicy %q", c.Targeting.NoTargetPolicy)
	}

	if c.Target.Speed != 0 && c.Target.Axis.Len() == 0 {
		return fmt.Errorf("target.axis must be non-zero when target.speed is %.3f", c.Target.Speed)
	}
	for i, t := range c.Scene.Targets {
		if t.Speed != nil && *t.Speed != 0 && c.Target.Axis.Len() == 0 {
			return fmt.Errorf("scene.targets[%d]: target.axis must be non-zero for a moving target", i)
		}
	}

	return nil
}

// TargetSpeed 返回指定摆放的目标速度（考虑覆盖值）
func (c *SimulationConfig) TargetSpeed(p TargetPlacement) float64 {
	if p.Speed != nil {
		return *p.Speed
	}
	return c.Target.Speed
}
