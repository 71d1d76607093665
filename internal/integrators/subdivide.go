package integrators

import "github.com/san-kum/greyspace/internal/dynamo"

// MaxDepth caps how many times one step may be halved.
const MaxDepth = 16

type span struct {
	dt    float64
	depth int
}

// Subdivide splits dt into leaf steps small enough that speed()*leaf < 1,
// so a body never crosses a whole field cell in one leaf. A step that is too
// long is replaced by two halves, and each half is judged against the speed
// at the moment it starts, exactly as recursive bisection would.
//
// leaf runs each leaf in time order and returns false to abandon the rest.
// Subdivide returns the number of leaves run.
func Subdivide(dt float64, speed func() float64, leaf func(dt float64) bool) int {
	stack := make([]span, 1, 8)
	stack[0] = span{dt: dt}
	leaves := 0
	capped := false

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if v := speed(); v*s.dt >= 1 {
			if s.depth < MaxDepth {
				half := span{dt: s.dt / 2, depth: s.depth + 1}
				stack = append(stack, half, half)
				continue
			}
			if !capped {
				capped = true
				dynamo.Check(false, "step subdivision depth exhausted", "dt", s.dt, "speed", v)
			}
		}

		leaves++
		if !leaf(s.dt) {
			break
		}
	}
	return leaves
}
