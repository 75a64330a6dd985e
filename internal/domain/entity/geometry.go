package entity

// Rect represents a window frame in screen coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}
