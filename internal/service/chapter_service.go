package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ChapterService interface {
	Create(req dto.ChapterWriteRequest) (*dto.ChapterResponse, error)
	GetAll() ([]dto.ChapterResponse, error)
	Get(id uint) (*dto.ChapterResponse, error)
	Update(id uint, req dto.ChapterWriteRequest) (*dto.ChapterResponse, error)
	Delete(id uint) error
}

type chapterService struct {
	chapterRepo repository.ChapterRepository
	db          *gorm.DB
}

func NewChapterService(chapterRepo repository.ChapterRepository, db *gorm.DB) ChapterService {
	return &chapterService{chapterRepo: chapterRepo, db: db}
}

func chapterToResponse(chapter *model.Chapter) (*dto.ChapterResponse, error) {
	var resp dto.ChapterResponse
	if err := copier.Copy(&resp, chapter); err != nil {
		return nil, apperr.Storage("failed to map chapter", err)
	}
	return &resp, nil
}

func (s *chapterService) Create(req dto.ChapterWriteRequest) (*dto.ChapterResponse, error) {
	chapter := model.Chapter{
		ProjectName: req.ProjectName,
		No:          req.No,
		Name:        req.Name,
		Weight:      *req.Weight,
	}
	if err := s.chapterRepo.Create(&chapter); err != nil {
		log.Error().Err(err).Msg("Failed to create chapter")
		return nil, apperr.Storage("failed to create chapter", err)
	}
	return chapterToResponse(&chapter)
}

func (s *chapterService) GetAll() ([]dto.ChapterResponse, error) {
	chapters, err := s.chapterRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list chapters")
		return nil, apperr.Storage("failed to list chapters", err)
	}
	out := make([]dto.ChapterResponse, 0, len(chapters))
	for i := range chapters {
		resp, err := chapterToResponse(&chapters[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *chapterService) Get(id uint) (*dto.ChapterResponse, error) {
	chapter, err := s.chapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chapter %d not found", id)
		}
		return nil, apperr.Storage("failed to load chapter", err)
	}
	return chapterToResponse(chapter)
}

func (s *chapterService) Update(id uint, req dto.ChapterWriteRequest) (*dto.ChapterResponse, error) {
	chapter, err := s.chapterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chapter %d not found for update", id)
		}
		return nil, apperr.Storage("failed to load chapter", err)
	}

	chapter.ProjectName = req.ProjectName
	chapter.No = req.No
	chapter.Name = req.Name
	chapter.Weight = *req.Weight

	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, apperr.Storage("failed to update chapter", err)
	}
	return chapterToResponse(chapter)
}

func (s *chapterService) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var assessments int64
		if err := tx.Model(&model.Assessment{}).Where("chapter_id = ?", id).Count(&assessments).Error; err != nil {
			return apperr.Storage("failed to check chapter references", err)
		}
		if assessments > 0 {
			return apperr.Conflict("chapter %d is referenced by %d assessment(s)", id, assessments)
		}
		res := tx.Delete(&model.Chapter{}, id)
		if res.Error != nil {
			return apperr.Storage("failed to delete chapter", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("chapter %d not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		return wrapTxErr(err)
	}
	log.Info().Uint("chapterID", id).Msg("Chapter deleted")
	return nil
}
