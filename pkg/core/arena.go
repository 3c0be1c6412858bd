package core

// ElementArena issues session-scoped element handles backed by a monotonic
// counter and maps them to backend-native element ids. Every adapter owns
// one arena per driver instance; backend identifiers never leak past the
// adapter boundary and handles never collide across drivers.
//
// The arena is not synchronized: a driver instance is not designed for
// concurrent invocation.
type ElementArena struct {
	next uint64
	ids  map[ElementHandle]string
}

// NewElementArena creates an empty arena.
func NewElementArena() *ElementArena {
	return &ElementArena{ids: make(map[ElementHandle]string)}
}

// Issue records a backend-native id and returns a fresh handle for it.
func (a *ElementArena) Issue(nativeID string) ElementHandle {
	a.next++
	h := ElementHandle(a.next)
	a.ids[h] = nativeID
	return h
}

// Native resolves a handle back to its backend-native id.
func (a *ElementArena) Native(h ElementHandle) (string, bool) {
	id, ok := a.ids[h]
	return id, ok
}

// Len returns the number of issued handles.
func (a *ElementArena) Len() int {
	return len(a.ids)
}
