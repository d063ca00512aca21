package dto

// AssessmentDetailInput is one leaf-level entry of an assessment write.
// ErrorCount is a pointer so that an explicit zero passes validation while a
// missing field aborts the whole operation.
type AssessmentDetailInput struct {
	SubAspectID uint `json:"sub_aspect_id" binding:"required"`
	ErrorCount  *int `json:"error_count" binding:"required,gte=0"`
}

// AssessmentWriteRequest is the shared input shape of create and update.
// Details replace the full prior set on update, they are never merged.
type AssessmentWriteRequest struct {
	ChapterID      uint                    `json:"chapter_id" binding:"required"`
	AssessmentDate string                  `json:"assessment_date" binding:"required"`
	AssessorName   string                  `json:"assessor_name" binding:"required"`
	Notes          *string                 `json:"notes"`
	Details        []AssessmentDetailInput `json:"details" binding:"dive"`
}

// AssessmentListFilter carries the optional, conjunctive list filters.
type AssessmentListFilter struct {
	ChapterID *uint
	Status    *string
	StartDate *string
	EndDate   *string
}

type ChapterWriteRequest struct {
	ProjectName string   `json:"project_name" binding:"required"`
	No          int      `json:"no" binding:"required"`
	Name        string   `json:"chapter_name" binding:"required"`
	Weight      *float64 `json:"weight" binding:"required"`
}
