package repository

import (
	"time"

	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"gorm.io/gorm"
)

// RubricScoreRow is one flat row of the rubric enumeration left-joined
// against a single assessment's details. ErrorCount and DetailID are nil for
// leaves that assessment never touched.
type RubricScoreRow struct {
	ParameterID   uint
	ParameterName string
	AspectID      uint
	AspectName    string
	SubAspectID   uint
	SubAspectName string
	ErrorCount    *int
	DetailID      *uint
}

// AssessmentHeaderRow is the assessment header joined with its chapter.
type AssessmentHeaderRow struct {
	ID             uint
	ChapterID      uint
	AssessmentDate time.Time
	AssessorName   string
	Status         string
	Notes          *string
	TotalScore     *int
	Predicate      *string
	ChapterName    string
	ProjectName    string
	ChapterNo      int
	ChapterWeight  float64
}

// AssessmentSummaryRow is one row of the filtered assessment list.
type AssessmentSummaryRow struct {
	ID             uint
	AssessmentDate time.Time
	AssessorName   string
	Status         string
	Notes          *string
	TotalScore     *int
	Predicate      *string
	ChapterID      uint
	ChapterName    string
	ProjectName    string
}

type AssessmentRepository interface {
	FindHeaderByID(id uint) (*AssessmentHeaderRow, error)
	// FindRubricRows enumerates the complete rubric ordered by parameter id,
	// aspect id, sub-aspect id, outer-joined against this assessment's
	// details so untouched leaves still appear.
	FindRubricRows(assessmentID uint) ([]RubricScoreRow, error)
	FindSummaries(filter dto.AssessmentListFilter) ([]AssessmentSummaryRow, error)
	FindSummaryByID(id uint) (*AssessmentSummaryRow, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) FindHeaderByID(id uint) (*AssessmentHeaderRow, error) {
	var row AssessmentHeaderRow
	err := r.db.Model(&model.Assessment{}).
		Select(`assessments.id, assessments.chapter_id, assessments.assessment_date,
			assessments.assessor_name, assessments.status, assessments.notes,
			assessments.total_score, assessments.predicate,
			chapters.chapter_name AS chapter_name, chapters.project_name AS project_name,
			chapters.no AS chapter_no, chapters.weight AS chapter_weight`).
		Joins("JOIN chapters ON chapters.id = assessments.chapter_id").
		Where("assessments.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *assessmentRepository) FindRubricRows(assessmentID uint) ([]RubricScoreRow, error) {
	var rows []RubricScoreRow
	err := r.db.Model(&model.Parameter{}).
		Select(`parameters.id AS parameter_id, parameters.name AS parameter_name,
			aspects.id AS aspect_id, aspects.name AS aspect_name,
			sub_aspects.id AS sub_aspect_id, sub_aspects.name AS sub_aspect_name,
			assessment_details.error_count AS error_count,
			assessment_details.id AS detail_id`).
		Joins("JOIN aspects ON aspects.parameter_id = parameters.id").
		Joins("JOIN sub_aspects ON sub_aspects.aspect_id = aspects.id").
		Joins("LEFT JOIN assessment_details ON assessment_details.sub_aspect_id = sub_aspects.id AND assessment_details.assessment_id = ?", assessmentID).
		Order("parameters.id, aspects.id, sub_aspects.id").
		Scan(&rows).Error
	return rows, err
}

func (r *assessmentRepository) FindSummaries(filter dto.AssessmentListFilter) ([]AssessmentSummaryRow, error) {
	query := r.db.Model(&model.Assessment{}).
		Select(`assessments.id, assessments.assessment_date, assessments.assessor_name,
			assessments.status, assessments.notes, assessments.total_score,
			assessments.predicate, assessments.chapter_id,
			chapters.chapter_name AS chapter_name, chapters.project_name AS project_name`).
		Joins("JOIN chapters ON chapters.id = assessments.chapter_id")

	if filter.ChapterID != nil {
		query = query.Where("assessments.chapter_id = ?", *filter.ChapterID)
	}
	if filter.Status != nil {
		query = query.Where("assessments.status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("assessments.assessment_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("assessments.assessment_date <= ?", *filter.EndDate)
	}

	var rows []AssessmentSummaryRow
	err := query.Order("assessments.assessment_date DESC, assessments.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *assessmentRepository) FindSummaryByID(id uint) (*AssessmentSummaryRow, error) {
	var row AssessmentSummaryRow
	err := r.db.Model(&model.Assessment{}).
		Select(`assessments.id, assessments.assessment_date, assessments.assessor_name,
			assessments.status, assessments.notes, assessments.total_score,
			assessments.predicate, assessments.chapter_id,
			chapters.chapter_name AS chapter_name, chapters.project_name AS project_name`).
		Joins("JOIN chapters ON chapters.id = assessments.chapter_id").
		Where("assessments.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
