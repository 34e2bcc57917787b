package dice

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	// Total is the sum of all rolls plus the bonus
	Total int

	// Rolls holds the individual die results in order
	Rolls []int

	// Bonus is the flat bonus added to the raw total
	Bonus int

	// Count is the number of dice rolled
	Count int

	// Sides is the die size
	Sides int

	// RawTotal is the sum of the rolls before the bonus
	RawTotal int
}
