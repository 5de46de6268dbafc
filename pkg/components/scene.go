package components

// SceneHandle 可渲染预制体（场景资源）的不透明引用
// 模拟核心只负责透传，从不解析其内容。
type SceneHandle string

// SceneComponent 挂载在需要由渲染层实例化的实体上
type SceneComponent struct {
	Handle SceneHandle
}
