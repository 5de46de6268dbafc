package event

// EventType 事件类型
type EventType string

// Event 事件结构
type Event struct {
	Type EventType
	Data interface{} // 事件数据，具体类型见 types.go
}

// Listener 事件订阅者接口
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 让普通函数实现 Listener
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 同步事件分发器
// 事件在 Dispatch 调用内按订阅顺序同步投递，不做排队。
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建新的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Dispatch 将事件发送给所有订阅者
// nil 分发器是合法的空操作，方便系统在无订阅时直接调用。
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
