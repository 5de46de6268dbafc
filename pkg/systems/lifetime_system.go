package systems

import (
	"log"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/event"
)

// LifetimeSystem 管理实体的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	verbose       bool
}

// NewLifetimeSystem 创建一个新的生命周期系统
// dispatcher 可为 nil
func NewLifetimeSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, verbose bool) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		verbose:       verbose,
	}
}

// Update 更新所有拥有生命周期组件的实体
//
// 计时器刚到期的实体连同其子孙一起被标记删除；
// 标记后的实体在本帧后续查询中不可见，帧末由 RemoveMarkedEntities 清理。
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		// 可能已作为前面过期实体的子孙被标记
		if !s.entityManager.IsAlive(id) {
			continue
		}

		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if !lifetime.Timer.Advance(deltaTime) {
			continue
		}

		s.entityManager.DestroyEntity(id)

		if s.verbose {
			log.Printf("[LifetimeSystem] 实体 %d 生命周期结束 (%.2fs)，标记删除", id, lifetime.Timer.Duration)
		}

		s.dispatcher.Dispatch(event.Event{
			Type: event.EntityExpired,
			Data: event.EntityExpiredData{EntityID: id},
		})
	}
}
