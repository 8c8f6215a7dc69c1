package junction

import "fmt"

// Direction identifies one of the four approaches to the intersection
type Direction int

const (
	// North approach
	North Direction = iota
	// East approach
	East
	// South approach
	South
	// West approach
	West
)

// NumDirections is the number of approaches to the intersection
const NumDirections = 4

// Order is the fixed service order used by the fixed-cycle policy
var Order = [NumDirections]Direction{North, East, South, West}

// directionLabels maps directions to their wire labels
var directionLabels = [NumDirections]string{"N", "E", "S", "W"}

// String returns the wire label of the direction
func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionLabels[d]
}

// Next returns the direction following d in the fixed service order,
// wrapping from West back to North
func (d Direction) Next() Direction {
	return Direction((int(d) + 1) % NumDirections)
}

// ParseDirection converts a wire label into a Direction
func ParseDirection(label string) (Direction, error) {
	for i, l := range directionLabels {
		if l == label {
			return Direction(i), nil
		}
	}
	return 0, NewInvalidDirectionError(label)
}

// LaneCounts holds one non-negative integer per approach
type LaneCounts map[Direction]int

// NewLaneCounts returns a LaneCounts with every approach at zero
func NewLaneCounts() LaneCounts {
	counts := make(LaneCounts, NumDirections)
	for _, d := range Order {
		counts[d] = 0
	}
	return counts
}

// Clone returns an independent copy of the counts
func (c LaneCounts) Clone() LaneCounts {
	clone := make(LaneCounts, NumDirections)
	for d, n := range c {
		clone[d] = n
	}
	return clone
}

// Total returns the sum over all approaches
func (c LaneCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
