package ecs

import (
	"errors"
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

var (
	// ErrEntityNotFound 实体不存在或已被标记删除
	ErrEntityNotFound = errors.New("ecs: entity not found")
	// ErrHierarchyCycle 父子关系会形成环（实体不能成为自己或祖先的子节点）
	ErrHierarchyCycle = errors.New("ecs: hierarchy cycle")
)

// EntityManager 管理所有实体和组件
//
// 删除是延迟的：DestroyEntity 只做标记，RemoveMarkedEntities 在帧末统一清理。
// 被标记的实体立即从查询结果中消失。
//
// EntityManager 不是并发安全的，所有调用应来自同一个模拟线程。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
	// 已标记删除（等待清理）的实体
	pendingDestroy map[EntityID]struct{}

	parents  map[EntityID]EntityID
	children map[EntityID][]EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
		pendingDestroy:    make(map[EntityID]struct{}),
		parents:           make(map[EntityID]EntityID),
		children:          make(map[EntityID][]EntityID),
	}
}

// CreateEntity 创建新实体并返回唯一ID
// 新实体立即可见（同一帧内后续系统即可查询到）
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// IsAlive 检查实体是否存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if _, exists := em.components[id]; !exists {
		return false
	}
	_, pending := em.pendingDestroy[id]
	return !pending
}

// EntityCount 返回存活实体数量（不含已标记删除的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components) - len(em.pendingDestroy)
}

// DestroyEntity 标记实体及其所有子孙实体待删除(不立即删除)
//
// 子孙按后序遍历标记（先子后父）。
// 对不存在或已标记的实体调用是空操作。
func (em *EntityManager) DestroyEntity(id EntityID) {
	if !em.IsAlive(id) {
		return
	}
	for _, child := range em.children[id] {
		em.DestroyEntity(child)
	}
	em.pendingDestroy[id] = struct{}{}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// SetParent 将 child 挂到 parent 下
//
// 返回:
//   - ErrEntityNotFound: 任一实体不存活
//   - ErrHierarchyCycle: parent 就是 child 或是 child 的子孙
func (em *EntityManager) SetParent(child, parent EntityID) error {
	if !em.IsAlive(child) || !em.IsAlive(parent) {
		return ErrEntityNotFound
	}
	for cur := parent; cur != 0; cur = em.parents[cur] {
		if cur == child {
			return ErrHierarchyCycle
		}
	}
	em.detach(child)
	em.parents[child] = parent
	em.children[parent] = append(em.children[parent], child)
	return nil
}

// Parent 返回实体的父实体，没有父实体时返回 (0, false)
func (em *EntityManager) Parent(id EntityID) (EntityID, bool) {
	parent, ok := em.parents[id]
	return parent, ok
}

// Children 返回实体的直接子实体（副本）
func (em *EntityManager) Children(id EntityID) []EntityID {
	kids := em.children[id]
	result := make([]EntityID, len(kids))
	copy(result, kids)
	return result
}

func (em *EntityManager) detach(child EntityID) {
	parent, ok := em.parents[child]
	if !ok {
		return
	}
	kids := em.children[parent]
	for i, k := range kids {
		if k == child {
			em.children[parent] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(em.children[parent]) == 0 {
		delete(em.children, parent)
	}
	delete(em.parents, child)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
// 已标记删除的实体视为不存在
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if !em.IsAlive(id) {
		return nil, false
	}
	if comp, found := em.components[id][componentType]; found {
		return comp, true
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, found := em.GetComponent(id, componentType)
	return found
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		em.detach(id)
		delete(em.children, id)
		delete(em.components, id)
		delete(em.pendingDestroy, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按 ID 升序
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		if _, pending := em.pendingDestroy[id]; pending {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sortIDs(result)
	return result
}

// sortIDs 保证查询结果顺序稳定（map 遍历顺序是随机的）
func sortIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
