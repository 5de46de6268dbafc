package systems

import (
	"math"
	"testing"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/go-gl/mathgl/mgl64"
)

// testShooterSettings 使用默认配置的射手参数
func testShooterSettings() ShooterSettings {
	return ShooterSettingsFromConfig(config.DefaultSimulationConfig())
}

// createTestShooter 创建一个朝向为单位四元数、偏移 (0,0.2,0.5) 的射手
func createTestShooter(t *testing.T, em *ecs.EntityManager, position mgl64.Vec3, cooldown float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewShooter(em, position, 0, cooldown, mgl64.Vec3{0, 0.2, 0.5})
	if err != nil {
		t.Fatalf("failed to create shooter: %v", err)
	}
	return id
}

// createTestTarget 创建一个静止目标
func createTestTarget(t *testing.T, em *ecs.EntityManager, position mgl64.Vec3) ecs.EntityID {
	t.Helper()
	id, err := entities.NewTarget(em, position, 0, mgl64.Vec3{1, 0, 0}, 0)
	if err != nil {
		t.Fatalf("failed to create target: %v", err)
	}
	return id
}

func nan() float64 {
	return math.NaN()
}
