package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unicourse/planner-api/internal/dto"
	"github.com/unicourse/planner-api/internal/models"
	"github.com/unicourse/planner-api/internal/planner"
	"github.com/unicourse/planner-api/internal/repository"
	"github.com/unicourse/planner-api/pkg/config"
	appErrors "github.com/unicourse/planner-api/pkg/errors"
)

type catalogProvider interface {
	Entry(ctx context.Context, datasetID string) (repository.CatalogEntry, error)
}

type planGenerator interface {
	Generate(input planner.Input) (*planner.Result, error)
}

type plannerMetrics interface {
	ObserveGeneration(plans, combinationsTested int, duration time.Duration)
	RecordGenerationFailure(code string)
}

// PlannerService validates generation requests and drives the engine.
type PlannerService struct {
	catalogs  catalogProvider
	generator planGenerator
	validator *validator.Validate
	metrics   plannerMetrics
	logger    *zap.Logger
	cfg       config.PlannerConfig
}

// NewPlannerService constructs the service.
func NewPlannerService(catalogs catalogProvider, generator planGenerator, cfg config.PlannerConfig, validate *validator.Validate, metrics plannerMetrics, logger *zap.Logger) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if generator == nil {
		generator = planner.NewGenerator(logger)
	}
	return &PlannerService{
		catalogs:  catalogs,
		generator: generator,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// GeneratePlans resolves the request's dataset and returns every ranked
// conflict-free schedule.
func (s *PlannerService) GeneratePlans(ctx context.Context, req dto.GeneratePlansRequest) (*dto.GeneratePlansResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"invalid generation request")
	}
	if err := s.checkLimits(req); err != nil {
		return nil, err
	}

	entry, err := s.catalogs.Entry(ctx, req.DatasetID)
	if err != nil {
		return nil, err
	}

	maxPerTerm := req.MaxCoursesPerTerm
	if maxPerTerm == 0 {
		maxPerTerm = s.cfg.MaxCoursesPerTerm
	}

	started := time.Now()
	result, err := s.generator.Generate(planner.Input{
		Selection:         toSelection(req.Courses),
		Catalog:           entry.Result.Catalog,
		Term1:             req.Term1,
		Term2:             req.Term2,
		Blockouts:         toBlockouts(req.Blockouts),
		MaxCoursesPerTerm: maxPerTerm,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordGenerationFailure(appErrors.FromError(err).Code)
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveGeneration(len(result.Plans), result.Stats.CombinationsTested, time.Since(started))
	}

	plans := result.Plans
	totalPlans := len(plans)
	if req.Limit > 0 && len(plans) > req.Limit {
		plans = plans[:req.Limit]
	}

	response := &dto.GeneratePlansResponse{
		Plans: make([]dto.PlanItem, 0, len(plans)),
		Stats: dto.GenerationStats{
			AssignmentsTested:  result.Stats.AssignmentsTested,
			CombinationsTested: result.Stats.CombinationsTested,
			ConflictRejections: result.Stats.ConflictRejections,
			TotalPlans:         totalPlans,
		},
	}
	for _, plan := range plans {
		response.Plans = append(response.Plans, toPlanItem(plan))
	}
	return response, nil
}

// checkLimits enforces request-level ceilings before the engine sees the
// input.
func (s *PlannerService) checkLimits(req dto.GeneratePlansRequest) error {
	if s.cfg.MaxSelectedCourses > 0 && len(req.Courses) > s.cfg.MaxSelectedCourses {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(
			"selection of %d courses exceeds the maximum of %d", len(req.Courses), s.cfg.MaxSelectedCourses))
	}
	if s.cfg.OverloadCeiling > 0 && req.MaxCoursesPerTerm > s.cfg.OverloadCeiling {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(
			"per-term cap of %d exceeds the overload ceiling of %d", req.MaxCoursesPerTerm, s.cfg.OverloadCeiling))
	}
	seen := make(map[string]struct{}, len(req.Courses))
	for _, course := range req.Courses {
		if _, dup := seen[course.Code]; dup {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(
				"course %s appears more than once in the selection", course.Code))
		}
		seen[course.Code] = struct{}{}
	}
	return nil
}

func toSelection(courses []dto.SelectedCourseRequest) models.Selection {
	selection := make(models.Selection, 0, len(courses))
	for _, course := range courses {
		selection = append(selection, models.SelectedCourse{
			Code:     course.Code,
			Title:    course.Title,
			Sections: course.Sections,
		})
	}
	return selection
}

func toBlockouts(blockouts []dto.BlockoutRequest) []models.Blockout {
	result := make([]models.Blockout, 0, len(blockouts))
	for _, blockout := range blockouts {
		result = append(result, models.Blockout{
			ID:       blockout.ID,
			Name:     blockout.Name,
			Day:      blockout.Day,
			StartMin: blockout.StartMin,
			EndMin:   blockout.EndMin,
			ApplyTo:  models.BlockoutScope(blockout.ApplyTo),
		})
	}
	return result
}

func toPlanItem(plan models.Plan) dto.PlanItem {
	item := dto.PlanItem{
		Courses:    make([]dto.PlanCourseItem, 0, len(plan.Courses)),
		Term1Count: plan.Term1Count,
		Term2Count: plan.Term2Count,
		DayOffs:    plan.DayOffs,
	}
	for _, course := range plan.Courses {
		item.Courses = append(item.Courses, toPlanCourseItem(course))
	}
	return item
}

func toPlanCourseItem(course models.PlanCourse) dto.PlanCourseItem {
	item := dto.PlanCourseItem{
		CourseCode:  course.CourseCode,
		CourseTitle: course.CourseTitle,
		Department:  course.Department,
		Term:        course.Term,
		Section:     course.Section,
		Sessions:    make([]dto.SessionItem, 0, len(course.Sessions)),
	}
	for _, session := range course.Sessions {
		days := make(map[string]bool, len(models.WeekdayKeys))
		for _, day := range models.WeekdayKeys {
			days[day] = session.Days.Active(day)
		}
		item.Sessions = append(item.Sessions, dto.SessionItem{
			Days:       days,
			StartMin:   session.StartMin,
			EndMin:     session.EndMin,
			StartDate:  session.StartDate,
			EndDate:    session.EndDate,
			Venue:      session.Venue,
			Instructor: session.Instructor,
		})
	}
	return item
}
