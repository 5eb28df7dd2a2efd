package floats

// CrossOver reports whether series1 moves from <= series2 to > series2
// between two consecutive samples.
func CrossOver(prev1, cur1, prev2, cur2 float64) bool {
	return prev1 <= prev2 && cur1 > cur2
}

// CrossUnder reports whether series1 moves from >= series2 to < series2
// between two consecutive samples.
func CrossUnder(prev1, cur1, prev2, cur2 float64) bool {
	return prev1 >= prev2 && cur1 < cur2
}
