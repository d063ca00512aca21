package service

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AssessmentService is the write path for assessments and the read path for
// the reconstructed rubric view. Every mutation runs as one transaction:
// header, detail set and the recomputed score triple commit together or not
// at all.
type AssessmentService interface {
	Create(req dto.AssessmentWriteRequest) (*dto.CreatedResponse, error)
	Update(id uint, req dto.AssessmentWriteRequest) (*dto.AssessmentSummaryDTO, error)
	Delete(id uint) error
	Recalculate(id uint) (*dto.ScoreResultDTO, error)
	GetAssessmentView(id uint) (*dto.AssessmentViewDTO, error)
	List(filter dto.AssessmentListFilter) ([]dto.AssessmentSummaryDTO, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	engine         ScoringEngine
	db             *gorm.DB
}

func NewAssessmentService(assessmentRepo repository.AssessmentRepository, engine ScoringEngine, db *gorm.DB) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		engine:         engine,
		db:             db,
	}
}

// dateLayouts accepted for assessment_date, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseAssessmentDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation("assessment_date %q is not a valid date", raw)
}

// validateWrite re-checks the §-contract on the service boundary even though
// gin binding already rejects most malformed payloads: a missing details
// array, a detail without its error count, a negative count or a duplicated
// sub-aspect all abort the whole operation before anything is persisted.
func validateWrite(req *dto.AssessmentWriteRequest) error {
	if req.ChapterID == 0 || req.AssessorName == "" || req.AssessmentDate == "" {
		return apperr.Validation("chapter_id, assessor_name and assessment_date are required")
	}
	if req.Details == nil {
		return apperr.Validation("assessment details must be an array")
	}
	seen := make(map[uint]bool, len(req.Details))
	for _, detail := range req.Details {
		if detail.SubAspectID == 0 || detail.ErrorCount == nil {
			return apperr.Validation("each detail must have sub_aspect_id and error_count")
		}
		if *detail.ErrorCount < 0 {
			return apperr.Validation("error_count for sub-aspect %d must be non-negative", detail.SubAspectID)
		}
		if seen[detail.SubAspectID] {
			return apperr.Validation("duplicate sub_aspect_id %d in details", detail.SubAspectID)
		}
		seen[detail.SubAspectID] = true
	}
	return nil
}

// wrapTxErr keeps tagged conditions as-is and folds everything else into a
// retry-safe storage failure; the transaction has already rolled back.
func wrapTxErr(err error) error {
	var tagged *apperr.Error
	if errors.As(err, &tagged) {
		return tagged
	}
	return apperr.Storage("transaction failed", err)
}

func (s *assessmentService) checkChapterExists(tx *gorm.DB, chapterID uint) error {
	var count int64
	if err := tx.Model(&model.Chapter{}).Where("id = ?", chapterID).Count(&count).Error; err != nil {
		return apperr.Storage("failed to verify chapter reference", err)
	}
	if count == 0 {
		return apperr.Conflict("chapter %d does not exist", chapterID)
	}
	return nil
}

func (s *assessmentService) checkSubAspectsExist(tx *gorm.DB, details []dto.AssessmentDetailInput) error {
	if len(details) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(details))
	for _, detail := range details {
		ids = append(ids, detail.SubAspectID)
	}
	var count int64
	if err := tx.Model(&model.SubAspect{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return apperr.Storage("failed to verify sub-aspect references", err)
	}
	if count != int64(len(ids)) {
		return apperr.Conflict("one or more details reference a sub-aspect that does not exist")
	}
	return nil
}

// applyScore is the single recompute path shared by create, update and
// recalculate. It reads the detail set as committed so far in this
// transaction, evaluates it and persists the derived triple on the header.
func (s *assessmentService) applyScore(tx *gorm.DB, assessmentID uint) (ScoreResult, error) {
	var details []model.AssessmentDetail
	if err := tx.Where("assessment_id = ?", assessmentID).Find(&details).Error; err != nil {
		return ScoreResult{}, apperr.Storage("failed to load details for scoring", err)
	}

	var categories []model.ScoreCategory
	if err := tx.Order("id ASC").Find(&categories).Error; err != nil {
		return ScoreResult{}, apperr.Storage("failed to load score categories", err)
	}

	result, err := s.engine.Evaluate(s.engine.SumErrors(details), categories)
	if err != nil {
		return ScoreResult{}, err
	}

	err = tx.Model(&model.Assessment{}).Where("id = ?", assessmentID).Updates(map[string]interface{}{
		"total_score": result.TotalScore,
		"predicate":   result.Predicate,
		"status":      result.Status,
	}).Error
	if err != nil {
		return ScoreResult{}, apperr.Storage("failed to persist derived score fields", err)
	}
	return result, nil
}

func (s *assessmentService) Create(req dto.AssessmentWriteRequest) (*dto.CreatedResponse, error) {
	if err := validateWrite(&req); err != nil {
		return nil, err
	}
	date, err := parseAssessmentDate(req.AssessmentDate)
	if err != nil {
		return nil, err
	}

	assessment := model.Assessment{
		ChapterID:      req.ChapterID,
		AssessmentDate: date,
		AssessorName:   req.AssessorName,
		Notes:          req.Notes,
		Status:         model.StatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkChapterExists(tx, req.ChapterID); err != nil {
			return err
		}
		if err := s.checkSubAspectsExist(tx, req.Details); err != nil {
			return err
		}
		if err := tx.Create(&assessment).Error; err != nil {
			return apperr.Storage("failed to insert assessment header", err)
		}
		if len(req.Details) > 0 {
			details := make([]model.AssessmentDetail, 0, len(req.Details))
			for _, input := range req.Details {
				details = append(details, model.AssessmentDetail{
					AssessmentID: assessment.ID,
					SubAspectID:  input.SubAspectID,
					ErrorCount:   *input.ErrorCount,
				})
			}
			if err := tx.Create(&details).Error; err != nil {
				return apperr.Storage("failed to insert assessment details", err)
			}
		}
		_, err := s.applyScore(tx, assessment.ID)
		return err
	})
	if err != nil {
		log.Error().Err(err).Uint("chapterID", req.ChapterID).Msg("Create assessment failed")
		return nil, wrapTxErr(err)
	}

	log.Info().Uint("assessmentID", assessment.ID).Msg("Assessment created and scored")
	return &dto.CreatedResponse{ID: assessment.ID}, nil
}

func (s *assessmentService) Update(id uint, req dto.AssessmentWriteRequest) (*dto.AssessmentSummaryDTO, error) {
	if err := validateWrite(&req); err != nil {
		return nil, err
	}
	date, err := parseAssessmentDate(req.AssessmentDate)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkChapterExists(tx, req.ChapterID); err != nil {
			return err
		}
		if err := s.checkSubAspectsExist(tx, req.Details); err != nil {
			return err
		}

		res := tx.Model(&model.Assessment{}).Where("id = ?", id).Updates(map[string]interface{}{
			"chapter_id":      req.ChapterID,
			"assessment_date": date,
			"assessor_name":   req.AssessorName,
			"notes":           req.Notes,
		})
		if res.Error != nil {
			return apperr.Storage("failed to update assessment header", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("assessment %d not found for update", id)
		}

		// Replace semantics: the prior detail set is discarded wholesale,
		// never merged, so at most one row per sub-aspect holds by
		// construction.
		if err := tx.Where("assessment_id = ?", id).Delete(&model.AssessmentDetail{}).Error; err != nil {
			return apperr.Storage("failed to clear previous details", err)
		}
		if len(req.Details) > 0 {
			details := make([]model.AssessmentDetail, 0, len(req.Details))
			for _, input := range req.Details {
				details = append(details, model.AssessmentDetail{
					AssessmentID: id,
					SubAspectID:  input.SubAspectID,
					ErrorCount:   *input.ErrorCount,
				})
			}
			if err := tx.Create(&details).Error; err != nil {
				return apperr.Storage("failed to insert replacement details", err)
			}
		}

		_, err := s.applyScore(tx, id)
		return err
	})
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Update assessment failed")
		return nil, wrapTxErr(err)
	}

	row, err := s.assessmentRepo.FindSummaryByID(id)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", id).Msg("Failed to reload updated assessment")
		return nil, apperr.Storage("failed to reload updated assessment", err)
	}
	var summary dto.AssessmentSummaryDTO
	if err := copier.Copy(&summary, row); err != nil {
		return nil, apperr.Storage("failed to map updated assessment", err)
	}
	return &summary, nil
}

func (s *assessmentService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", id).Delete(&model.AssessmentDetail{}).Error; err != nil {
			return apperr.Storage("failed to delete assessment details", err)
		}
		res := tx.Delete(&model.Assessment{}, id)
		if res.Error != nil {
			return apperr.Storage("failed to delete assessment header", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("assessment %d not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Uint("assessmentID", id).Msg("Delete assessment failed")
		return wrapTxErr(err)
	}
	log.Info().Uint("assessmentID", id).Msg("Assessment deleted")
	return nil
}

// Recalculate re-derives the score triple from the currently stored detail
// set without touching it. Repairs drift after category-table edits and is
// idempotent.
func (s *assessmentService) Recalculate(id uint) (*dto.ScoreResultDTO, error) {
	var result ScoreResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Assessment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return apperr.Storage("failed to verify assessment", err)
		}
		if count == 0 {
			return apperr.NotFound("assessment %d not found", id)
		}
		r, err := s.applyScore(tx, id)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}
	return &dto.ScoreResultDTO{
		ID:         id,
		TotalScore: result.TotalScore,
		Predicate:  result.Predicate,
		Status:     result.Status,
	}, nil
}

func (s *assessmentService) GetAssessmentView(id uint) (*dto.AssessmentViewDTO, error) {
	header, err := s.assessmentRepo.FindHeaderByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assessment %d not found", id)
		}
		return nil, apperr.Storage("failed to load assessment header", err)
	}

	rows, err := s.assessmentRepo.FindRubricRows(id)
	if err != nil {
		return nil, apperr.Storage("failed to load rubric rows", err)
	}

	var headerDTO dto.AssessmentHeaderDTO
	if err := copier.Copy(&headerDTO, header); err != nil {
		return nil, apperr.Storage("failed to map assessment header", err)
	}

	return &dto.AssessmentViewDTO{
		Header:     headerDTO,
		Parameters: buildParameterTree(rows),
	}, nil
}

// buildParameterTree groups the ordered flat rows into the nested
// parameter/aspect/sub-aspect structure. The rows arrive sorted by
// parameter, aspect and sub-aspect id, so a change of id opens a new node;
// no auxiliary index pass is needed. Absent details read as zero errors, and
// each parameter accumulates its read-time error rollup.
func buildParameterTree(rows []repository.RubricScoreRow) []dto.ParameterScoreDTO {
	parameters := make([]dto.ParameterScoreDTO, 0)
	for _, row := range rows {
		if len(parameters) == 0 || parameters[len(parameters)-1].ParameterID != row.ParameterID {
			parameters = append(parameters, dto.ParameterScoreDTO{
				ParameterID:   row.ParameterID,
				ParameterName: row.ParameterName,
				Aspects:       make([]dto.AspectScoreDTO, 0),
			})
		}
		parameter := &parameters[len(parameters)-1]

		if len(parameter.Aspects) == 0 || parameter.Aspects[len(parameter.Aspects)-1].AspectID != row.AspectID {
			parameter.Aspects = append(parameter.Aspects, dto.AspectScoreDTO{
				AspectID:   row.AspectID,
				AspectName: row.AspectName,
				SubAspects: make([]dto.SubAspectScoreDTO, 0),
			})
		}
		aspect := &parameter.Aspects[len(parameter.Aspects)-1]

		errorCount := 0
		if row.ErrorCount != nil {
			errorCount = *row.ErrorCount
		}
		aspect.SubAspects = append(aspect.SubAspects, dto.SubAspectScoreDTO{
			SubAspectID:   row.SubAspectID,
			SubAspectName: row.SubAspectName,
			ErrorCount:    errorCount,
			DetailID:      row.DetailID,
		})
		parameter.TotalErrors += errorCount
	}
	return parameters
}

func (s *assessmentService) List(filter dto.AssessmentListFilter) ([]dto.AssessmentSummaryDTO, error) {
	rows, err := s.assessmentRepo.FindSummaries(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assessments")
		return nil, apperr.Storage("failed to list assessments", err)
	}

	summaries := make([]dto.AssessmentSummaryDTO, 0, len(rows))
	for _, row := range rows {
		var summary dto.AssessmentSummaryDTO
		if err := copier.Copy(&summary, &row); err != nil {
			return nil, apperr.Storage("failed to map assessment summary", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
