package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nandaakram/chapter-assessment/config"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database named after the test,
// so parallel tests never share state, and migrates the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Parameter{},
		&model.Aspect{},
		&model.SubAspect{},
		&model.ScoreCategory{},
		&model.Chapter{},
		&model.Assessment{},
		&model.AssessmentDetail{},
	))
	return db
}

func testScoringConfig() *config.Config {
	return &config.Config{
		Scoring: config.Scoring{Baseline: 90, PassThreshold: 65},
	}
}

func seedCategories(t *testing.T, db *gorm.DB) {
	t.Helper()
	categories := []model.ScoreCategory{
		{Name: "A", MinScore: 90, MaxScore: 100},
		{Name: "B", MinScore: 75, MaxScore: 89},
		{Name: "C", MinScore: 65, MaxScore: 74},
		{Name: "D", MinScore: 0, MaxScore: 64},
	}
	require.NoError(t, db.Create(&categories).Error)
}

func seedChapter(t *testing.T, db *gorm.DB) model.Chapter {
	t.Helper()
	chapter := model.Chapter{ProjectName: "Bridge Revamp", No: 3, Name: "Substructure", Weight: 0.25}
	require.NoError(t, db.Create(&chapter).Error)
	return chapter
}

// seededRubric is a small two-parameter rubric with four leaves total.
type seededRubric struct {
	Accuracy     model.Parameter
	Completeness model.Parameter
	Geometry     model.Aspect
	Loads        model.Aspect
	Coverage     model.Aspect
	Dimensions   model.SubAspect
	Tolerances   model.SubAspect
	LoadCases    model.SubAspect
	Sections     model.SubAspect
}

func seedRubric(t *testing.T, db *gorm.DB) seededRubric {
	t.Helper()
	var r seededRubric

	r.Accuracy = model.Parameter{Name: "Accuracy"}
	require.NoError(t, db.Create(&r.Accuracy).Error)
	r.Completeness = model.Parameter{Name: "Completeness"}
	require.NoError(t, db.Create(&r.Completeness).Error)

	r.Geometry = model.Aspect{ParameterID: r.Accuracy.ID, Name: "Geometry"}
	require.NoError(t, db.Create(&r.Geometry).Error)
	r.Loads = model.Aspect{ParameterID: r.Accuracy.ID, Name: "Loads"}
	require.NoError(t, db.Create(&r.Loads).Error)
	r.Coverage = model.Aspect{ParameterID: r.Completeness.ID, Name: "Coverage"}
	require.NoError(t, db.Create(&r.Coverage).Error)

	r.Dimensions = model.SubAspect{AspectID: r.Geometry.ID, Name: "Dimensions"}
	require.NoError(t, db.Create(&r.Dimensions).Error)
	r.Tolerances = model.SubAspect{AspectID: r.Geometry.ID, Name: "Tolerances"}
	require.NoError(t, db.Create(&r.Tolerances).Error)
	r.LoadCases = model.SubAspect{AspectID: r.Loads.ID, Name: "Load cases"}
	require.NoError(t, db.Create(&r.LoadCases).Error)
	r.Sections = model.SubAspect{AspectID: r.Coverage.ID, Name: "Sections"}
	require.NoError(t, db.Create(&r.Sections).Error)

	return r
}

func newTestAssessmentService(t *testing.T, db *gorm.DB) AssessmentService {
	t.Helper()
	engine := NewScoringEngine(testScoringConfig())
	return NewAssessmentService(repository.NewAssessmentRepository(db), engine, db)
}

func newTestRubricService(db *gorm.DB) RubricService {
	return NewRubricService(
		repository.NewParameterRepository(db),
		repository.NewAspectRepository(db),
		repository.NewSubAspectRepository(db),
		db,
	)
}

func intPtr(v int) *int { return &v }

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return parsed
}
