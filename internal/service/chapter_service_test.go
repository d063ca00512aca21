package service

import (
	"testing"

	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestChapterService(db *gorm.DB) ChapterService {
	return NewChapterService(repository.NewChapterRepository(db), db)
}

func floatPtr(v float64) *float64 { return &v }

func TestChapterLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChapterService(db)

	created, err := svc.Create(dto.ChapterWriteRequest{
		ProjectName: "Bridge Revamp",
		No:          1,
		Name:        "Foundations",
		Weight:      floatPtr(0.2),
	})
	require.NoError(t, err)
	assert.Equal(t, "Foundations", created.Name)
	assert.Equal(t, 0.2, created.Weight)

	fetched, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	updated, err := svc.Update(created.ID, dto.ChapterWriteRequest{
		ProjectName: "Bridge Revamp",
		No:          1,
		Name:        "Deep foundations",
		Weight:      floatPtr(0.25),
	})
	require.NoError(t, err)
	assert.Equal(t, "Deep foundations", updated.Name)
	assert.Equal(t, 0.25, updated.Weight)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestChapterListOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChapterService(db)

	for _, c := range []dto.ChapterWriteRequest{
		{ProjectName: "Harbour", No: 2, Name: "Quay wall", Weight: floatPtr(0.5)},
		{ProjectName: "Bridge Revamp", No: 2, Name: "Piers", Weight: floatPtr(0.3)},
		{ProjectName: "Bridge Revamp", No: 1, Name: "Foundations", Weight: floatPtr(0.2)},
	} {
		_, err := svc.Create(c)
		require.NoError(t, err)
	}

	chapters, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, "Foundations", chapters[0].Name)
	assert.Equal(t, "Piers", chapters[1].Name)
	assert.Equal(t, "Quay wall", chapters[2].Name)
}

func TestDeleteChapterBlockedByAssessments(t *testing.T) {
	db := newTestDB(t)
	seedCategories(t, db)
	seedRubric(t, db)
	chapterSvc := newTestChapterService(db)
	assessmentSvc := newTestAssessmentService(t, db)

	chapter, err := chapterSvc.Create(dto.ChapterWriteRequest{
		ProjectName: "Bridge Revamp",
		No:          1,
		Name:        "Foundations",
		Weight:      floatPtr(0.2),
	})
	require.NoError(t, err)

	created, err := assessmentSvc.Create(dto.AssessmentWriteRequest{
		ChapterID:      chapter.ID,
		AssessmentDate: "2026-03-10",
		AssessorName:   "Rina",
		Details:        []dto.AssessmentDetailInput{},
	})
	require.NoError(t, err)

	assert.True(t, apperr.IsConflict(chapterSvc.Delete(chapter.ID)))

	// Removing the assessment unblocks the chapter.
	require.NoError(t, assessmentSvc.Delete(created.ID))
	require.NoError(t, chapterSvc.Delete(chapter.ID))
}

func TestDeleteChapterNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChapterService(db)

	assert.True(t, apperr.IsNotFound(svc.Delete(42)))
}
