package service

import (
	"github.com/nandaakram/chapter-assessment/internal/apperr"
	"github.com/nandaakram/chapter-assessment/internal/dto"
	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/rs/zerolog/log"
)

// defaultScoreCategories is the gapless A-D partition seeded on first boot.
// Catalog order matters: the scoring engine takes the first containing band.
var defaultScoreCategories = []model.ScoreCategory{
	{Name: "A", MinScore: 90, MaxScore: 100},
	{Name: "B", MinScore: 75, MaxScore: 89},
	{Name: "C", MinScore: 65, MaxScore: 74},
	{Name: "D", MinScore: 0, MaxScore: 64},
}

type ScoreCategoryService interface {
	List() ([]dto.ScoreCategoryResponse, error)
	// SeedDefaults installs the default bands when the catalog is empty.
	SeedDefaults() error
}

type scoreCategoryService struct {
	categoryRepo repository.ScoreCategoryRepository
}

func NewScoreCategoryService(categoryRepo repository.ScoreCategoryRepository) ScoreCategoryService {
	return &scoreCategoryService{categoryRepo: categoryRepo}
}

func (s *scoreCategoryService) List() ([]dto.ScoreCategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllOrdered()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list score categories")
		return nil, apperr.Storage("failed to list score categories", err)
	}
	out := make([]dto.ScoreCategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.ScoreCategoryResponse{
			ID:       category.ID,
			Name:     category.Name,
			MinScore: category.MinScore,
			MaxScore: category.MaxScore,
		})
	}
	return out, nil
}

func (s *scoreCategoryService) SeedDefaults() error {
	count, err := s.categoryRepo.Count()
	if err != nil {
		return apperr.Storage("failed to count score categories", err)
	}
	if count > 0 {
		return nil
	}
	categories := make([]model.ScoreCategory, len(defaultScoreCategories))
	copy(categories, defaultScoreCategories)
	if err := s.categoryRepo.CreateAll(categories); err != nil {
		return apperr.Storage("failed to seed score categories", err)
	}
	log.Info().Int("count", len(categories)).Msg("Seeded default score categories")
	return nil
}
