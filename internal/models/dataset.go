package models

import (
	"time"

	"github.com/lib/pq"
)

// Dataset describes one uploaded timetable export after normalization.
type Dataset struct {
	ID          string         `db:"id" json:"id"`
	Hash        string         `db:"hash" json:"hash"`
	Filename    string         `db:"filename" json:"filename"`
	RowCount    int            `db:"row_count" json:"rowCount"`
	CourseCount int            `db:"course_count" json:"courseCount"`
	Terms       pq.StringArray `db:"terms" json:"terms"`
	UploadedAt  time.Time      `db:"uploaded_at" json:"uploadedAt"`
}
