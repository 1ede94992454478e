package irlint

// Run applies CheckMusttail to ir and, if actualPreds is non-nil, also
// applies CheckPhiPredecessors, returning the combined violation list.
// cmd/irlint does not go through Run; it calls CheckMusttail directly.
func Run(ir string, actualPreds map[string]map[string]bool) []Violation {
	violations := CheckMusttail(ir)
	if actualPreds != nil {
		violations = append(violations, CheckPhiPredecessors(ir, actualPreds)...)
	}
	return violations
}
