package core

// ElementHandle is an opaque, session-scoped reference to a located UI
// element. Handles are only valid against the Driver instance that issued
// them; each driver privately maps handles to backend-native element ids.
// The zero value is never issued.
type ElementHandle uint64

// Valid returns true if the handle was issued by a driver.
func (h ElementHandle) Valid() bool {
	return h != 0
}

// Rect represents element position and size in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the rect.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains checks if a point is within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
