package event

import (
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	ProjectileSpawned EventType = "ProjectileSpawned" // 射手发射了子弹
	ShotSkipped       EventType = "ShotSkipped"       // 冷却到期但没有有效目标
	EntityExpired     EventType = "EntityExpired"     // 生命周期到期，实体被删除
)

// ProjectileSpawnedData ProjectileSpawned 事件数据
type ProjectileSpawnedData struct {
	ShooterID    ecs.EntityID
	ProjectileID ecs.EntityID
	TargetID     ecs.EntityID // 0 表示固定方向射击
	SpawnPoint   mgl64.Vec3
	Direction    mgl64.Vec3
}

// ShotSkippedData ShotSkipped 事件数据
type ShotSkippedData struct {
	ShooterID ecs.EntityID
	Reason    string
}

// EntityExpiredData EntityExpired 事件数据
type EntityExpiredData struct {
	EntityID ecs.EntityID
}
