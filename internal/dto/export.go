package dto

// ExportPlanRequest renders a chosen plan as a downloadable file. The
// client sends back the plan exactly as generated; nothing is recomputed.
type ExportPlanRequest struct {
	Format string   `json:"format" validate:"required,oneof=ics csv pdf"`
	Title  string   `json:"title"`
	Plan   PlanItem `json:"plan" validate:"required"`

	// ICS options mirroring the interactive exporter.
	TitleTemplate       string            `json:"titleTemplate"`
	DescriptionTemplate string            `json:"descriptionTemplate"`
	IncludeLocation     *bool             `json:"includeLocation"`
	IncludeBlockouts    bool              `json:"includeBlockouts"`
	RoundToHalfHour     bool              `json:"roundToHalfHour"`
	Blockouts           []BlockoutRequest `json:"blockouts" validate:"omitempty,dive"`
}
