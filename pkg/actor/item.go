package actor

// Item is one of the consumable goods carried by characters.
type Item int

const (
	Sandwich Item = iota
	Crisps
	Drink
)

var itemLabels = map[Item]string{
	Sandwich: "sandwich",
	Crisps:   "crisps",
	Drink:    "drink",
}

// Items returns every item in declaration order.
func Items() []Item {
	return []Item{Sandwich, Crisps, Drink}
}

// Meal returns the items the player must hold before eating.
func Meal() []Item {
	return Items()
}

func (i Item) String() string {
	if label, ok := itemLabels[i]; ok {
		return label
	}
	return "unknown"
}

// ParseItem looks up an item by its exact label.
func ParseItem(label string) (Item, bool) {
	for it, l := range itemLabels {
		if l == label {
			return it, true
		}
	}
	return 0, false
}
