package planner

import "github.com/unicourse/planner-api/internal/models"

// termAssignment is one placement of the flexible courses across the two
// terms.
type termAssignment struct {
	term1 []models.SelectedCourse
	term2 []models.SelectedCourse
}

// enumerateAssignments walks the binary choice tree over the flexible
// courses depth-first, term1 branch first, invoking visit for every
// assignment whose subset sizes stay within the per-term capacities.
// Branches are pruned the moment a subset reaches its capacity, before any
// deeper recursion. The caller has already verified that the flexible count
// fits the combined capacity.
func enumerateAssignments(flexible []models.SelectedCourse, term1Capacity, term2Capacity int, visit func(termAssignment)) {
	var recurse func(index int, term1, term2 []models.SelectedCourse)
	recurse = func(index int, term1, term2 []models.SelectedCourse) {
		if index == len(flexible) {
			visit(termAssignment{term1: term1, term2: term2})
			return
		}

		course := flexible[index]
		if len(term1) < term1Capacity {
			recurse(index+1, appendCourse(term1, course), term2)
		}
		if len(term2) < term2Capacity {
			recurse(index+1, term1, appendCourse(term2, course))
		}
	}

	recurse(0, nil, nil)
}

// appendCourse copies before appending so sibling branches never alias the
// same backing array.
func appendCourse(list []models.SelectedCourse, course models.SelectedCourse) []models.SelectedCourse {
	next := make([]models.SelectedCourse, len(list), len(list)+1)
	copy(next, list)
	return append(next, course)
}
