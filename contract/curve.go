package contract

// Bonding curve: the unit price starts at 1 and climbs one step per percent
// of the funding goal raised. Pure functions, no state.

// tokensFor converts a paid amount into whole credits at the current price.
// A zero price yields zero credits; the invariant keeps price >= 1, the
// guard is there so a corrupt record cannot divide by zero.
func tokensFor(amount, price uint64) uint64 {
	if price == 0 {
		return 0
	}
	return amount / price
}

// nextPrice recomputes the unit price from cumulative raised funds:
// 1 + floor(totalRaised * 100 / fundingGoal). A zero funding goal guards the
// division and leaves the price at the floor of 1; the multiply is checked
// and fails with Overflow instead of wrapping.
func nextPrice(totalRaised, fundingGoal uint64) (uint64, error) {
	if fundingGoal == 0 {
		return 1, nil
	}
	scaled, err := checkedMul(totalRaised, 100)
	if err != nil {
		return 0, err
	}
	return checkedAdd(1, scaled/fundingGoal)
}
