package dto

// UploadCatalogResponse describes a freshly ingested timetable dataset.
type UploadCatalogResponse struct {
	DatasetID   string   `json:"datasetId"`
	Hash        string   `json:"hash"`
	Filename    string   `json:"filename"`
	RowCount    int      `json:"rowCount"`
	CourseCount int      `json:"courseCount"`
	Terms       []string `json:"terms"`
}

// DatasetSummary lists a stored dataset without its row payload.
type DatasetSummary struct {
	DatasetID   string   `json:"datasetId"`
	Hash        string   `json:"hash"`
	Filename    string   `json:"filename"`
	RowCount    int      `json:"rowCount"`
	CourseCount int      `json:"courseCount"`
	Terms       []string `json:"terms"`
	UploadedAt  string   `json:"uploadedAt"`
}

// CourseItem is one selectable course derived from a dataset.
type CourseItem struct {
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Department    string   `json:"department"`
	Terms         []string `json:"terms"`
	Sections      []string `json:"sections"`
	SectionCount  int      `json:"sectionCount"`
	CommonCore    bool     `json:"commonCore"`
	WeeklySummary string   `json:"weeklySummary"`
}

// CourseQuery filters the course list of a dataset.
type CourseQuery struct {
	Search     string `form:"search" json:"search"`
	Term       string `form:"term" json:"term"`
	Department string `form:"department" json:"department"`
	CommonCore *bool  `form:"commonCore" json:"commonCore"`
}
