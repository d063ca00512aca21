package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type CreatedResponse struct {
	ID uint `json:"id"`
}

// ScoreResultDTO is the derived triple returned by recalculation.
type ScoreResultDTO struct {
	ID         uint   `json:"id"`
	TotalScore int    `json:"total_score"`
	Predicate  string `json:"predicate"`
	Status     string `json:"status"`
}

// AssessmentSummaryDTO is one row of the assessment list, with the chapter
// reference denormalized for display.
type AssessmentSummaryDTO struct {
	ID             uint      `json:"id"`
	AssessmentDate time.Time `json:"assessment_date"`
	AssessorName   string    `json:"assessor_name"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	TotalScore     *int      `json:"total_score,omitempty"`
	Predicate      *string   `json:"predicate,omitempty"`
	ChapterID      uint      `json:"chapter_id"`
	ChapterName    string    `json:"chapter_name"`
	ProjectName    string    `json:"project_name"`
}

// AssessmentHeaderDTO is the header block of the full assessment view.
type AssessmentHeaderDTO struct {
	ID             uint      `json:"id"`
	ChapterID      uint      `json:"chapter_id"`
	AssessmentDate time.Time `json:"assessment_date"`
	AssessorName   string    `json:"assessor_name"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes,omitempty"`
	TotalScore     *int      `json:"total_score,omitempty"`
	Predicate      *string   `json:"predicate,omitempty"`
	ChapterName    string    `json:"chapter_name"`
	ProjectName    string    `json:"project_name"`
	ChapterNo      int       `json:"chapter_no"`
	ChapterWeight  float64   `json:"chapter_weight"`
}

// SubAspectScoreDTO is one rubric leaf in the reconstructed view. DetailID is
// nil for leaves the assessment never touched; their error count reads zero.
type SubAspectScoreDTO struct {
	SubAspectID   uint   `json:"sub_aspect_id"`
	SubAspectName string `json:"sub_aspect_name"`
	ErrorCount    int    `json:"error_count"`
	DetailID      *uint  `json:"detail_id,omitempty"`
}

type AspectScoreDTO struct {
	AspectID   uint                `json:"aspect_id"`
	AspectName string              `json:"aspect_name"`
	SubAspects []SubAspectScoreDTO `json:"sub_aspects"`
}

// ParameterScoreDTO carries the read-time error rollup for one parameter.
type ParameterScoreDTO struct {
	ParameterID   uint             `json:"parameter_id"`
	ParameterName string           `json:"parameter_name"`
	TotalErrors   int              `json:"total_errors"`
	Aspects       []AspectScoreDTO `json:"aspects"`
}

// AssessmentViewDTO is the full nested view of one assessment: header plus
// the complete rubric tree with this assessment's error counts merged in.
type AssessmentViewDTO struct {
	Header     AssessmentHeaderDTO `json:"header"`
	Parameters []ParameterScoreDTO `json:"parameters"`
}

type ChapterResponse struct {
	ID          uint      `json:"id"`
	ProjectName string    `json:"project_name"`
	No          int       `json:"no"`
	Name        string    `json:"chapter_name"`
	Weight      float64   `json:"weight"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
