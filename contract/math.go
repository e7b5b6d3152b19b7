package contract

import "math"

// Checked arithmetic. Every add/sub/mul on ledger values goes through these;
// wraparound is never an acceptable outcome for money.

func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// checkedIncU8 bumps a sequence counter. Counters never decrement, so a full
// counter means the project has exhausted its index space for that entity.
func checkedIncU8(c uint8) (uint8, error) {
	if c == math.MaxUint8 {
		return 0, ErrOverflow
	}
	return c + 1, nil
}
