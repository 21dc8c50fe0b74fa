package planner

import (
	"fmt"

	"github.com/unicourse/planner-api/internal/models"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

// buckets partitions the selection by where the student's chosen sections
// are actually obtainable. Input order is preserved within each bucket.
type buckets struct {
	onlyTerm1 []models.SelectedCourse
	onlyTerm2 []models.SelectedCourse
	both      []models.SelectedCourse
}

// classify tests, per course and term, whether the intersection of the
// chosen section labels and the labels available in that (course, term)
// group is non-empty. A course obtainable in neither term has no legal
// placement and aborts the call.
func classify(selection models.Selection, catalog *models.Catalog, term1, term2 string) (*buckets, error) {
	result := &buckets{}

	for _, course := range selection {
		inTerm1 := hasSelectableSection(catalog, course, term1)
		inTerm2 := term2 != "" && hasSelectableSection(catalog, course, term2)

		switch {
		case inTerm1 && inTerm2:
			result.both = append(result.both, course)
		case inTerm1:
			result.onlyTerm1 = append(result.onlyTerm1, course)
		case inTerm2:
			result.onlyTerm2 = append(result.onlyTerm2, course)
		default:
			return nil, appErrors.Clone(appErrors.ErrUnresolvableCourse,
				fmt.Sprintf("no acceptable section of %s exists in any term", course.Code))
		}
	}

	return result, nil
}

func hasSelectableSection(catalog *models.Catalog, course models.SelectedCourse, term string) bool {
	group, ok := catalog.Group(course.Code, term)
	if !ok {
		return false
	}
	for _, label := range course.Sections {
		if _, exists := group.Sections[label]; exists {
			return true
		}
	}
	return false
}
