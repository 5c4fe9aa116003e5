package remote

import "sync"

// MemoryStream is an in-process Stream. Level pushes reach subscribers
// synchronously; field writes echo a full snapshot of the written path back
// to subscribers on a dispatch goroutine, in write order, the way a broker
// round-trip would.
type MemoryStream struct {
	mu            sync.Mutex
	fields        map[string]map[string]any
	levelSubs     map[string][]func(float64)
	errorSubs     map[string][]func(ErrorSnapshot)
	levels        map[string]float64
	levelObserved map[string]bool
	closed        bool

	events chan memoryEvent
	done   chan struct{}
}

type memoryEvent struct {
	subs []func(ErrorSnapshot)
	snap ErrorSnapshot
}

func NewMemoryStream() *MemoryStream {
	m := &MemoryStream{
		fields:        make(map[string]map[string]any),
		levelSubs:     make(map[string][]func(float64)),
		errorSubs:     make(map[string][]func(ErrorSnapshot)),
		levels:        make(map[string]float64),
		levelObserved: make(map[string]bool),
		events:        make(chan memoryEvent, 64),
		done:          make(chan struct{}),
	}
	go m.dispatch()
	return m
}

func (m *MemoryStream) dispatch() {
	defer close(m.done)
	for ev := range m.events {
		for _, sub := range ev.subs {
			sub(ev.snap)
		}
	}
}

func (m *MemoryStream) SubscribeLevel(path string, onValue func(float64)) error {
	m.mu.Lock()
	m.levelSubs[path] = append(m.levelSubs[path], onValue)
	observed := m.levelObserved[path]
	current := m.levels[path]
	m.mu.Unlock()

	if observed {
		onValue(current)
	}
	return nil
}

func (m *MemoryStream) SubscribeErrors(path string, onSnapshot func(ErrorSnapshot)) error {
	m.mu.Lock()
	m.errorSubs[path] = append(m.errorSubs[path], onSnapshot)
	_, known := m.fields[path]
	snap := m.snapshotLocked(path)
	m.mu.Unlock()

	if known {
		onSnapshot(snap)
	}
	return nil
}

// PushLevel simulates a telemetry update from the device.
func (m *MemoryStream) PushLevel(path string, value float64) {
	m.mu.Lock()
	m.levels[path] = value
	m.levelObserved[path] = true
	subs := append([]func(float64){}, m.levelSubs[path]...)
	m.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

func (m *MemoryStream) WriteField(path string, field string, value any) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	node, ok := m.fields[path]
	if !ok {
		node = make(map[string]any)
		m.fields[path] = node
	}
	node[field] = value
	snap := m.snapshotLocked(path)
	subs := append([]func(ErrorSnapshot){}, m.errorSubs[path]...)
	m.mu.Unlock()

	if len(subs) > 0 {
		m.events <- memoryEvent{subs: subs, snap: snap}
	}
	return nil
}

// Field returns the last written value for a path's field.
func (m *MemoryStream) Field(path string, field string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node, ok := m.fields[path]
	if !ok {
		return nil, false
	}
	v, ok := node[field]
	return v, ok
}

func (m *MemoryStream) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	close(m.events)
	<-m.done
	return nil
}

func (m *MemoryStream) snapshotLocked(path string) ErrorSnapshot {
	var snap ErrorSnapshot
	node := m.fields[path]
	if v, ok := node[FieldStatus].(int); ok {
		snap.Status = v
	}
	if v, ok := node[FieldNotified].(bool); ok {
		snap.Notified = v
	}
	if v, ok := node[FieldTimestamp].(string); ok {
		snap.Timestamp = v
	}
	if v, ok := node[FieldMonitor].(int); ok {
		snap.Monitor = v
	}
	return snap
}
