// Package ecs 提供一个极简的实体-组件存储
//
// 实体只是一个数字 ID，组件是任意数据结构体的指针。
// 系统通过组件类型组合查询实体，每帧结束时统一清理被标记删除的实体。
package ecs

import "reflect"

// EntityID 实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// EntityID -> 组件类型 -> 组件实例
	components map[EntityID]map[reflect.Type]any
	// 待删除实体 ID 列表（延迟到 RemoveMarkedEntities 统一清理，
	// 避免系统遍历过程中修改实体集合）
	pendingDestroy []EntityID
}

// NewEntityManager 创建一个空的 EntityManager
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:         1,
		components:     make(map[EntityID]map[reflect.Type]any),
		pendingDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回其 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除（不立即删除）
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pendingDestroy = append(em.pendingDestroy, id)
}

// IsAlive 检查实体是否仍然存在
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// AddComponent 为实体添加组件（component 必须是指针类型）
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, ok := em.components[id]; ok {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 移除实体上指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, ok := em.components[id]; ok {
		delete(compMap, componentType)
	}
}

// RemoveMarkedEntities 清理所有被 DestroyEntity 标记的实体
// 应在每帧所有系统更新完成后调用一次
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pendingDestroy {
		delete(em.components, id)
	}
	em.pendingDestroy = em.pendingDestroy[:0]
}

// Clear 移除所有实体（重开一局时调用）
// 实体 ID 继续单调递增，不会复用
func (em *EntityManager) Clear() {
	em.components = make(map[EntityID]map[reflect.Type]any)
	em.pendingDestroy = em.pendingDestroy[:0]
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
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
	return result
}

// getComponent 按类型取出组件实例（泛型 API 的底层实现）
func (em *EntityManager) getComponent(id EntityID, componentType reflect.Type) (any, bool) {
	if compMap, ok := em.components[id]; ok {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// GetComponent 获取实体上类型为 T 的组件
//
// 用法:
//
//	ball, ok := ecs.GetComponent[*components.BallComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.getComponent(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	return comp.(T), true
}

// HasComponent 检查实体是否拥有类型为 T 的组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	var zero T
	_, ok := em.getComponent(id, reflect.TypeOf(zero))
	return ok
}

// TypeOf 返回组件类型 T 的 reflect.Type，用于 GetEntitiesWith 查询
func TypeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
