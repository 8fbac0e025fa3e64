package scene

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Palette assigns colors to the three kinds of bodies in a scene.
type Palette struct {
	Plane  Color
	Center Color
	Body   Color
}

// DefaultPalette returns a translucent blue plane, a white center and
// green orbiting bodies.
func DefaultPalette() Palette {
	return Palette{
		Plane:  Color{R: 0, G: 0, B: 1, A: 0.5},
		Center: Color{R: 1, G: 1, B: 1, A: 1},
		Body:   Color{R: 0, G: 1, B: 0, A: 1},
	}
}

// IsZero reports whether no color of the palette has been set.
func (p Palette) IsZero() bool {
	return p == Palette{}
}

// RGBA returns the color as a [4]float64.
func (c Color) RGBA() [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}
