package fiber

import "walks/internal/surface"

// Segment draws a straight stroke from the current position to the next one
// and moves the fiber there.
func Segment(width float64) Renderer {
	return func(c surface.Canvas, s State) (State, error) {
		x2, y2 := s.Next()
		if err := c.Line(s.X, s.Y, x2, y2, width, s.Color); err != nil {
			return s, err
		}
		s.X, s.Y = x2, y2
		return s, nil
	}
}

// Point moves the fiber like Segment but only marks the landing spot with a
// small filled dot, for stippled styles.
func Point(radius float64) Renderer {
	return func(c surface.Canvas, s State) (State, error) {
		x2, y2 := s.Next()
		if err := c.Dot(x2, y2, radius, s.Color); err != nil {
			return s, err
		}
		s.X, s.Y = x2, y2
		return s, nil
	}
}
