package service

import (
	"testing"

	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssessmentDerivesScore(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	created, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(2)},
			{SubAspectID: rubric.LoadCases.ID, ErrorCount: intPtr(3)},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	var stored model.Assessment
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.NotNil(t, stored.TotalScore)
	require.NotNil(t, stored.Predicate)
	assert.Equal(t, 85, *stored.TotalScore)
	assert.Equal(t, "B", *stored.Predicate)
	assert.Equal(t, model.StatusLanjut, stored.Status)
	assert.Equal(t, mustDate(t, "2026-03-10").UTC(), stored.AssessmentDate.UTC())
}

func TestCreateAssessmentWithEmptyDetails(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	created, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details:        []dto.AssessmentDetailInput{},
	})
	require.NoError(t, err)

	var stored model.Assessment
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, 90, *stored.TotalScore)
	assert.Equal(t, "A", *stored.Predicate)
	assert.Equal(t, model.StatusLanjut, stored.Status)

	// The view still enumerates the whole rubric, all zeros.
	view, err := svc.GetAssessmentView(created.ID)
	require.NoError(t, err)
	require.Len(t, view.Parameters, 2)
	for _, parameter := range view.Parameters {
		assert.Zero(t, parameter.TotalErrors)
		for _, aspect := range parameter.Aspects {
			for _, leaf := range aspect.SubAspects {
				assert.Zero(t, leaf.ErrorCount)
				assert.Nil(t, leaf.DetailID)
			}
		}
	}
}

func TestCreateAssessmentValidation(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	base := dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details:        []dto.AssessmentDetailInput{},
	}

	t.Run("missing details array", func(t *testing.T) {
		req := base
		req.Details = nil
		_, err := svc.Create(req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("negative error count", func(t *testing.T) {
		req := base
		req.Details = []dto.AssessmentDetailInput{{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(-1)}}
		_, err := svc.Create(req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("duplicate sub-aspect", func(t *testing.T) {
		req := base
		req.Details = []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(1)},
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(2)},
		}
		_, err := svc.Create(req)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("unparseable date", func(t *testing.T) {
		req := base
		req.AssessmentDate = "10-03-2026"
		_, err := svc.Create(req)
		assert.True(t, apperr.IsValidation(err))
	})

	var count int64
	require.NoError(t, db.Model(&model.Assessment{}).Count(&count).Error)
	assert.Zero(t, count, "rejected writes must not persist anything")
}

func TestCreateAssessmentRejectsUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	_, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID + 999,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details:        []dto.AssessmentDetailInput{},
	})
	assert.True(t, apperr.IsConflict(err))

	_, err = svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Sections.ID + 999, ErrorCount: intPtr(1)},
		},
	})
	assert.True(t, apperr.IsConflict(err))

	var count int64
	require.NoError(t, db.Model(&model.Assessment{}).Count(&count).Error)
	assert.Zero(t, count, "failed transactions must roll back the header insert")
}

func TestGetAssessmentViewZeroFills(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	created, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(2)},
			{SubAspectID: rubric.LoadCases.ID, ErrorCount: intPtr(3)},
		},
	})
	require.NoError(t, err)

	view, err := svc.GetAssessmentView(created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, view.Header.ID)
	assert.Equal(t, chapter.ID, view.Header.ChapterID)
	assert.Equal(t, "Substructure", view.Header.ChapterName)
	assert.Equal(t, "Bridge Revamp", view.Header.ProjectName)
	require.NotNil(t, view.Header.TotalScore)
	assert.Equal(t, 85, *view.Header.TotalScore)

	// Every rubric leaf appears, touched or not, in id order.
	require.Len(t, view.Parameters, 2)

	accuracy := view.Parameters[0]
	assert.Equal(t, rubric.Accuracy.ID, accuracy.ParameterID)
	assert.Equal(t, 5, accuracy.TotalErrors)
	require.Len(t, accuracy.Aspects, 2)

	geometry := accuracy.Aspects[0]
	require.Len(t, geometry.SubAspects, 2)
	assert.Equal(t, 2, geometry.SubAspects[0].ErrorCount)
	assert.NotNil(t, geometry.SubAspects[0].DetailID)
	assert.Equal(t, 0, geometry.SubAspects[1].ErrorCount, "untouched leaf reads zero")
	assert.Nil(t, geometry.SubAspects[1].DetailID)

	loads := accuracy.Aspects[1]
	require.Len(t, loads.SubAspects, 1)
	assert.Equal(t, 3, loads.SubAspects[0].ErrorCount)

	completeness := view.Parameters[1]
	assert.Equal(t, 0, completeness.TotalErrors)
	require.Len(t, completeness.Aspects, 1)
	assert.Equal(t, 0, completeness.Aspects[0].SubAspects[0].ErrorCount)
}

func TestGetAssessmentViewNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	svc := newTestAssessmentService(t, db)

	_, err := svc.GetAssessmentView(42)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateReplacesDetailSet(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	created, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(2)},
		},
	})
	require.NoError(t, err)

	summary, err := svc.Update(created.ID, dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-11",
		AssessorName:   "Budi",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.LoadCases.ID, ErrorCount: intPtr(1)},
			{SubAspectID: rubric.Sections.ID, ErrorCount: intPtr(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi", summary.AssessorName)
	require.NotNil(t, summary.TotalScore)
	assert.Equal(t, 85, *summary.TotalScore)
	assert.Equal(t, model.StatusLanjut, summary.Status)

	// The prior set is gone wholesale, not merged.
	var details []model.AssessmentDetail
	require.NoError(t, db.Where("assessment_id = ?", created.ID).Order("sub_aspect_id").Find(&details).Error)
	require.Len(t, details, 2)
	assert.Equal(t, rubric.LoadCases.ID, details[0].SubAspectID)
	assert.Equal(t, rubric.Sections.ID, details[1].SubAspectID)
}

func TestUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	_, err := svc.Update(42, dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details:        []dto.AssessmentDetailInput{},
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestRecalculateIsIdempotentAndRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	created, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(5)},
		},
	})
	require.NoError(t, err)

	// Simulate drift from an out-of-band edit.
	require.NoError(t, db.Model(&model.Assessment{}).Where("id = ?", created.ID).
		Updates(map[string]interface{}{"total_score": 10, "predicate": "D", "status": model.StatusUlang}).Error)

	first, err := svc.Recalculate(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, first.TotalScore)
	assert.Equal(t, "B", first.Predicate)
	assert.Equal(t, model.StatusLanjut, first.Status)

	second, err := svc.Recalculate(created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecalculateNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	svc := newTestAssessmentService(t, db)

	_, err := svc.Recalculate(42)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteAssessmentRemovesDetails(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	chapter := seedChapter(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	created, err := svc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details: []dto.AssessmentDetailInput{
			{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(2)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	var count int64
	require.NoError(t, db.Model(&model.AssessmentDetail{}).Where("assessment_id = ?", created.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.True(t, apperr.IsNotFound(svc.Delete(created.ID)))
}

func TestListOrderingAndFilters(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	rubric := seedRubric(t, db)
	svc := newTestAssessmentService(t, db)

	chapterOne := seedChapter(t, db)
	chapterTwo := model.Chapter{ProjectName: "Bridge Revamp", No: 4, Name: "Superstructure", Weight: 0.3}
	require.NoError(t, db.Create(&chapterTwo).Error)

	mustCreate := func(chapterID uint, date string, errorCount int) uint {
		t.Helper()
		created, err := svc.Create(dto.AssessmentWriteRequest{
			ChapterID:      chapterID,
			AssessmentDate: date,
			AssessorName:   "Rina",
			Details: []dto.AssessmentDetailInput{
				{SubAspectID: rubric.Dimensions.ID, ErrorCount: intPtr(errorCount)},
			},
		})
		require.NoError(t, err)
		return created.ID
	}

	failing := mustCreate(chapterOne.ID, "2026-01-10", 30) // 60, ULANG
	newest := mustCreate(chapterOne.ID, "2026-02-01", 0)   // 90, LANJUT
	middle := mustCreate(chapterTwo.ID, "2026-01-20", 5)   // 85, LANJUT

	all, err := svc.List(dto.AssessmentListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{newest, middle, failing}, []uint{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Substructure", all[0].ChapterName)

	byChapter, err := svc.List(dto.AssessmentListFilter{ChapterID: &chapterOne.ID})
	require.NoError(t, err)
	require.Len(t, byChapter, 2)
	assert.Equal(t, newest, byChapter[0].ID)
	assert.Equal(t, failing, byChapter[1].ID)

	ulang := model.StatusUlang
	byStatus, err := svc.List(dto.AssessmentListFilter{Status: &ulang})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, failing, byStatus[0].ID)

	start, end := "2026-01-15", "2026-01-31"
	byRange, err := svc.List(dto.AssessmentListFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, middle, byRange[0].ID)

	lanjut := model.StatusLanjut
	combined, err := svc.List(dto.AssessmentListFilter{ChapterID: &chapterOne.ID, Status: &lanjut})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, newest, combined[0].ID)
}
