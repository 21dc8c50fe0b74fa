package dto

// SaveCartRequest persists a selection and its blockouts under the
// dataset's content hash so a re-upload of identical data restores them.
type SaveCartRequest struct {
	Courses   []SelectedCourseRequest `json:"courses" validate:"required,min=1,dive"`
	Blockouts []BlockoutRequest       `json:"blockouts" validate:"omitempty,dive"`
}

// CartResponse returns a stored cart.
type CartResponse struct {
	Hash      string                  `json:"hash"`
	Courses   []SelectedCourseRequest `json:"courses"`
	Blockouts []BlockoutRequest       `json:"blockouts"`
	SavedAt   string                  `json:"savedAt"`
}
