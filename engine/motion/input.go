package motion

import (
	"sync"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

// Input is a consistent snapshot of the drive keys taken at the start of a
// tick. Held state reflects keys currently down; the edge counters report
// key-down transitions since the previous snapshot (OS key repeat does not
// inflate them).
type Input struct {
	// Forward, Backward, Left, Right are the held directional key states.
	Forward, Backward, Left, Right bool

	// ToggleEdges counts mode-toggle key-down transitions since the last snapshot.
	ToggleEdges int

	// DirectionalEdges counts directional key-down transitions since the last snapshot.
	DirectionalEdges int
}

// KeyState is the shared record between the window's asynchronous key
// callbacks and the tick loop. Window callbacks write, the motion controller
// reads one snapshot per tick. A mutex preserves the single-writer-per-field,
// snapshot-read contract across goroutines.
type KeyState struct {
	mu sync.Mutex

	forward, backward, left, right, toggle bool

	toggleEdges      int
	directionalEdges int
}

// NewKeyState creates an empty key-state record.
//
// Returns:
//   - *KeyState: the record, ready to wire to window key callbacks
func NewKeyState() *KeyState {
	return &KeyState{}
}

// Press records a key-down event. Down-edges are only counted when the key
// was previously up, so GLFW repeat events do not register as new presses.
//
// Parameters:
//   - keyCode: the virtual key code from the window callback
func (k *KeyState) Press(keyCode uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch keyCode {
	case common.KeyW, common.KeyUp:
		if !k.forward {
			k.directionalEdges++
		}
		k.forward = true
	case common.KeyS, common.KeyDown:
		if !k.backward {
			k.directionalEdges++
		}
		k.backward = true
	case common.KeyA, common.KeyLeft:
		if !k.left {
			k.directionalEdges++
		}
		k.left = true
	case common.KeyD, common.KeyRight:
		if !k.right {
			k.directionalEdges++
		}
		k.right = true
	case common.KeySpace:
		if !k.toggle {
			k.toggleEdges++
		}
		k.toggle = true
	}
}

// Release records a key-up event.
//
// Parameters:
//   - keyCode: the virtual key code from the window callback
func (k *KeyState) Release(keyCode uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch keyCode {
	case common.KeyW, common.KeyUp:
		k.forward = false
	case common.KeyS, common.KeyDown:
		k.backward = false
	case common.KeyA, common.KeyLeft:
		k.left = false
	case common.KeyD, common.KeyRight:
		k.right = false
	case common.KeySpace:
		k.toggle = false
	}
}

// Snapshot returns the current input state and clears the edge counters, so
// each key-down transition is observed by exactly one tick.
//
// Returns:
//   - Input: the held keys plus edges accumulated since the previous snapshot
func (k *KeyState) Snapshot() Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	in := Input{
		Forward:          k.forward,
		Backward:         k.backward,
		Left:             k.left,
		Right:            k.right,
		ToggleEdges:      k.toggleEdges,
		DirectionalEdges: k.directionalEdges,
	}
	k.toggleEdges = 0
	k.directionalEdges = 0
	return in
}
