package actor

// IDs returns the roster in its canonical order.
func IDs() []ID {
	return []ID{Laura, Sally, Andy, Alex, Player, CookieMonster, CrispGiver}
}

// NewRoster creates a fresh set of characters with their starting items.
// Every call returns independent records, so games never share inventories.
func NewRoster() map[ID]*Character {
	return map[ID]*Character{
		Laura: NewCharacter(Laura, "Laura", 0.5, Behavior{}, Sandwich),
		Sally: NewCharacter(Sally, "Sally", 0.5, Behavior{}, Crisps),
		Andy:  NewCharacter(Andy, "Andy", 0.5, Behavior{}, Drink),
		Alex:  NewCharacter(Alex, "Alex", 0.5, Behavior{}),
		// The player never wanders on its own.
		Player: NewCharacter(Player, "The player (Me)", 0.0, Behavior{}),
		// CookieMonster eats everybody's crisps, CrispGiver hands them out.
		CookieMonster: NewCharacter(CookieMonster, "CookieMonster", 1.0, Harvest(Crisps)),
		CrispGiver:    NewCharacter(CrispGiver, "CrispGiver", 1.0, Distribute(Crisps)),
	}
}

func (id ID) String() string {
	switch id {
	case Laura:
		return "laura"
	case Sally:
		return "sally"
	case Andy:
		return "andy"
	case Alex:
		return "alex"
	case Player:
		return "player"
	case CookieMonster:
		return "cookie_monster"
	case CrispGiver:
		return "crisp_giver"
	default:
		return "unknown"
	}
}

// ParseID maps a roster key such as "cookie_monster" back to its ID.
func ParseID(key string) (ID, bool) {
	for _, id := range IDs() {
		if id.String() == key {
			return id, true
		}
	}
	return 0, false
}
