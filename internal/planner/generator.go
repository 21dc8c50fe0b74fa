package planner

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/models"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

// DefaultMaxCoursesPerTerm is the per-term course cap when the caller does
// not override it.
const DefaultMaxCoursesPerTerm = 6

// Input is the snapshot one generation call operates on. The generator
// never mutates it.
type Input struct {
	Selection         models.Selection
	Catalog           *models.Catalog
	Term1             string
	Term2             string
	Blockouts         []models.Blockout
	MaxCoursesPerTerm int
}

// Stats summarises the search effort of one generation call.
type Stats struct {
	AssignmentsTested   int `json:"assignmentsTested"`
	CombinationsTested  int `json:"combinationsTested"`
	ConflictRejections  int `json:"conflictRejections"`
	IncompleteDiscarded int `json:"incompleteDiscarded"`
}

// Result carries the ranked feasible plans. An empty plan list is a valid,
// non-error outcome meaning no conflict-free schedule exists.
type Result struct {
	Plans []models.Plan
	Stats Stats
}

// Generator enumerates every feasible two-term schedule for a selection.
// It is synchronous and pure over its inputs; callers wanting
// responsiveness bound input size rather than interrupt mid-search.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator builds a generator with the given logger.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate classifies the selection, enumerates term assignments and
// per-term section combinations, and assembles ranked complete plans.
// Structural errors (capacity, unresolvable course) abort before any
// search work begins.
func (g *Generator) Generate(input Input) (*Result, error) {
	result := &Result{Plans: []models.Plan{}}
	if len(input.Selection) == 0 {
		return result, nil
	}

	maxPerTerm := input.MaxCoursesPerTerm
	if maxPerTerm <= 0 {
		maxPerTerm = DefaultMaxCoursesPerTerm
	}

	classified, err := classify(input.Selection, input.Catalog, input.Term1, input.Term2)
	if err != nil {
		return nil, err
	}

	if len(classified.onlyTerm1) > maxPerTerm {
		return nil, capacityError(len(classified.onlyTerm1), maxPerTerm, input.Term1)
	}
	if len(classified.onlyTerm2) > maxPerTerm {
		return nil, capacityError(len(classified.onlyTerm2), maxPerTerm, input.Term2)
	}

	term1Capacity := maxPerTerm - len(classified.onlyTerm1)
	term2Capacity := maxPerTerm - len(classified.onlyTerm2)
	if input.Term2 == "" {
		term2Capacity = 0
	}
	if len(classified.both) > term1Capacity+term2Capacity {
		return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, fmt.Sprintf(
			"%d flexible courses need more than the %d remaining slots across both terms",
			len(classified.both), term1Capacity+term2Capacity))
	}

	term1Blockouts := scopedBlockouts(input.Blockouts, 1)
	term2Blockouts := scopedBlockouts(input.Blockouts, 2)

	var rawPlans []models.Plan
	enumerateAssignments(classified.both, term1Capacity, term2Capacity, func(assignment termAssignment) {
		result.Stats.AssignmentsTested++

		term1Courses := resolveTermCourses(
			concatCourses(classified.onlyTerm1, assignment.term1), input.Catalog, input.Term1, g.logger)
		term1Combos := enumerateSectionCombos(term1Courses, term1Blockouts, &result.Stats)

		term2Combos := [][]models.PlanCourse{{}}
		if input.Term2 != "" {
			term2Courses := resolveTermCourses(
				concatCourses(classified.onlyTerm2, assignment.term2), input.Catalog, input.Term2, g.logger)
			term2Combos = enumerateSectionCombos(term2Courses, term2Blockouts, &result.Stats)
		}

		for _, combo1 := range term1Combos {
			for _, combo2 := range term2Combos {
				courses := make([]models.PlanCourse, 0, len(combo1)+len(combo2))
				courses = append(courses, combo1...)
				courses = append(courses, combo2...)
				rawPlans = append(rawPlans, models.Plan{
					Courses:    courses,
					Term1Count: len(combo1),
					Term2Count: len(combo2),
				})
			}
		}
	})

	complete := g.filterComplete(rawPlans, input.Selection, &result.Stats)
	complete = dedupePlans(complete)
	for i := range complete {
		complete[i].DayOffs = planDayOffs(complete[i], input.Term1, input.Term2)
	}
	rankPlans(complete)
	result.Plans = complete

	g.logger.Info("schedule generation complete",
		zap.Int("selectedCourses", len(input.Selection)),
		zap.Int("assignmentsTested", result.Stats.AssignmentsTested),
		zap.Int("combinationsTested", result.Stats.CombinationsTested),
		zap.Int("conflictRejections", result.Stats.ConflictRejections),
		zap.Int("plans", len(result.Plans)),
	)
	return result, nil
}

// filterComplete discards any plan whose distinct course codes do not
// exactly cover the selection; a course silently dropped from a term
// fragment surfaces here.
func (g *Generator) filterComplete(plans []models.Plan, selection models.Selection, stats *Stats) []models.Plan {
	expected := len(selection)
	complete := make([]models.Plan, 0, len(plans))
	for _, plan := range plans {
		codes := make(map[string]struct{}, len(plan.Courses))
		for _, course := range plan.Courses {
			codes[course.CourseCode] = struct{}{}
		}
		if len(codes) == expected && len(plan.Courses) == expected {
			complete = append(complete, plan)
		} else {
			stats.IncompleteDiscarded++
		}
	}
	return complete
}

// dedupePlans drops plans whose (course, term, section) triple sets repeat,
// keeping the first occurrence.
func dedupePlans(plans []models.Plan) []models.Plan {
	seen := make(map[string]struct{}, len(plans))
	unique := make([]models.Plan, 0, len(plans))
	for _, plan := range plans {
		key := planKey(plan)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, plan)
	}
	return unique
}

func planKey(plan models.Plan) string {
	parts := make([]string, 0, len(plan.Courses))
	for _, course := range plan.Courses {
		parts = append(parts, course.CourseCode+"|"+course.Term+"|"+course.Section)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

func scopedBlockouts(blockouts []models.Blockout, termOrdinal int) []models.Blockout {
	scoped := make([]models.Blockout, 0, len(blockouts))
	for _, blockout := range blockouts {
		if blockout.ApplyTo.AppliesTo(termOrdinal) {
			scoped = append(scoped, blockout)
		}
	}
	return scoped
}

func concatCourses(fixed, flexible []models.SelectedCourse) []models.SelectedCourse {
	combined := make([]models.SelectedCourse, 0, len(fixed)+len(flexible))
	combined = append(combined, fixed...)
	combined = append(combined, flexible...)
	return combined
}

func capacityError(count, limit int, term string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrCapacityExceeded, fmt.Sprintf(
		"%d courses can only be scheduled in %s, exceeding the cap of %d", count, term, limit))
}
