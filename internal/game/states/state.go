// Package states implements game state management.
package states

// Controls is the per-frame player input a state reacts to.
type Controls struct {
	// Axis is the horizontal paddle direction in [-1, 1].
	Axis float32
	// Launch is set on the frame the launch key went down.
	Launch bool
}

// State represents a game state (serving, in play).
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt float64, in Controls) error
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the start of the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64, in Controls) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt, in)
	}
	return nil
}
