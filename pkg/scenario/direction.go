package scenario

// Direction is a compass direction used to key room exits.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions returns all directions in declaration order.
func Directions() []Direction {
	return []Direction{North, South, East, West}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection looks up a direction by its exact label.
func ParseDirection(label string) (Direction, bool) {
	for _, d := range Directions() {
		if d.String() == label {
			return d, true
		}
	}
	return 0, false
}
