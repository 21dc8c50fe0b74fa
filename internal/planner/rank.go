package planner

import (
	"sort"

	"github.com/unicourse/planner-api/internal/models"
)

var rankedWeekdays = []string{"mon", "tue", "wed", "thu", "fri"}

// countVariance measures how unevenly the courses spread over the two
// terms; zero means perfectly balanced.
func countVariance(term1Count, term2Count int) float64 {
	mean := float64(term1Count+term2Count) / 2
	d1 := float64(term1Count) - mean
	d2 := float64(term2Count) - mean
	return (d1*d1 + d2*d2) / 2
}

// termDayOffs counts the Mon-Fri weekdays with no active session among the
// given courses. Sessions without parsed times still mark a day as used
// when their day flags are set.
func termDayOffs(courses []models.PlanCourse) int {
	active := make(map[string]struct{})
	for _, course := range courses {
		for _, session := range course.Sessions {
			for _, day := range rankedWeekdays {
				if session.Days.Active(day) {
					active[day] = struct{}{}
				}
			}
		}
	}
	return len(rankedWeekdays) - len(active)
}

// planDayOffs sums the free weekdays of both terms.
func planDayOffs(plan models.Plan, term1, term2 string) int {
	var term1Courses, term2Courses []models.PlanCourse
	for _, course := range plan.Courses {
		switch course.Term {
		case term1:
			term1Courses = append(term1Courses, course)
		case term2:
			term2Courses = append(term2Courses, course)
		}
	}

	total := termDayOffs(term1Courses)
	if term2 != "" {
		total += termDayOffs(term2Courses)
	}
	return total
}

// rankPlans orders plans by balance (count variance ascending) and then by
// total day-offs (descending). The sort is stable, so ties keep generation
// order.
func rankPlans(plans []models.Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		varianceI := countVariance(plans[i].Term1Count, plans[i].Term2Count)
		varianceJ := countVariance(plans[j].Term1Count, plans[j].Term2Count)
		if varianceI != varianceJ {
			return varianceI < varianceJ
		}
		return plans[i].DayOffs > plans[j].DayOffs
	})
}
