package borrowsvc

// ComputeTotal is the whole pricing model: days times the daily rate. Days
// below one are a validation failure, never clamped.
func ComputeTotal(days int, pricePerDay float64) (float64, error) {
	if days < 1 {
		return 0, makeErr(ErrInvalidDays)
	}
	if pricePerDay < 0 {
		return 0, makeErr(ErrInvalidPrice)
	}
	return float64(days) * pricePerDay, nil
}
