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

// RubricService manages the three-level rubric tree. Deletions are guarded:
// a parameter with aspects, an aspect with sub-aspects or a sub-aspect
// referenced by any assessment detail cannot be removed.
type RubricService interface {
	GetFullTree() ([]dto.ParameterResponse, error)

	CreateParameter(req dto.ParameterWriteRequest) (*dto.ParameterResponse, error)
	UpdateParameter(id uint, req dto.ParameterWriteRequest) (*dto.ParameterResponse, error)
	DeleteParameter(id uint) error

	CreateAspect(req dto.AspectCreateRequest) (*dto.AspectResponse, error)
	UpdateAspect(id uint, req dto.AspectUpdateRequest) (*dto.AspectResponse, error)
	DeleteAspect(id uint) error

	CreateSubAspect(req dto.SubAspectCreateRequest) (*dto.SubAspectResponse, error)
	UpdateSubAspect(id uint, req dto.SubAspectUpdateRequest) (*dto.SubAspectResponse, error)
	DeleteSubAspect(id uint) error
}

type rubricService struct {
	parameterRepo repository.ParameterRepository
	aspectRepo    repository.AspectRepository
	subAspectRepo repository.SubAspectRepository
	db            *gorm.DB
}

func NewRubricService(
	parameterRepo repository.ParameterRepository,
	aspectRepo repository.AspectRepository,
	subAspectRepo repository.SubAspectRepository,
	db *gorm.DB,
) RubricService {
	return &rubricService{
		parameterRepo: parameterRepo,
		aspectRepo:    aspectRepo,
		subAspectRepo: subAspectRepo,
		db:            db,
	}
}

func (s *rubricService) GetFullTree() ([]dto.ParameterResponse, error) {
	parameters, err := s.parameterRepo.FindAllWithTree()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load rubric tree")
		return nil, apperr.Storage("failed to load rubric tree", err)
	}

	tree := make([]dto.ParameterResponse, 0, len(parameters))
	if err := copier.Copy(&tree, &parameters); err != nil {
		return nil, apperr.Storage("failed to map rubric tree", err)
	}
	// Leaf slices stay arrays in JSON even when empty.
	for i := range tree {
		if tree[i].Aspects == nil {
			tree[i].Aspects = make([]dto.AspectResponse, 0)
		}
		for j := range tree[i].Aspects {
			if tree[i].Aspects[j].SubAspects == nil {
				tree[i].Aspects[j].SubAspects = make([]dto.SubAspectResponse, 0)
			}
		}
	}
	return tree, nil
}

// --- Parameter ---

func (s *rubricService) CreateParameter(req dto.ParameterWriteRequest) (*dto.ParameterResponse, error) {
	parameter := model.Parameter{Name: req.Name}
	if err := s.parameterRepo.Create(&parameter); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("parameter name %q already exists", req.Name)
		}
		log.Error().Err(err).Msg("Failed to create parameter")
		return nil, apperr.Storage("failed to create parameter", err)
	}
	return &dto.ParameterResponse{ID: parameter.ID, Name: parameter.Name, Aspects: make([]dto.AspectResponse, 0)}, nil
}

func (s *rubricService) UpdateParameter(id uint, req dto.ParameterWriteRequest) (*dto.ParameterResponse, error) {
	parameter, err := s.parameterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("parameter %d not found", id)
		}
		return nil, apperr.Storage("failed to load parameter", err)
	}

	parameter.Name = req.Name
	if err := s.parameterRepo.Update(parameter); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("parameter name %q already exists", req.Name)
		}
		return nil, apperr.Storage("failed to update parameter", err)
	}
	return &dto.ParameterResponse{ID: parameter.ID, Name: parameter.Name, Aspects: make([]dto.AspectResponse, 0)}, nil
}

func (s *rubricService) DeleteParameter(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var aspects int64
		if err := tx.Model(&model.Aspect{}).Where("parameter_id = ?", id).Count(&aspects).Error; err != nil {
			return apperr.Storage("failed to check parameter aspects", err)
		}
		if aspects > 0 {
			return apperr.Conflict("parameter %d still owns %d aspect(s); delete them first", id, aspects)
		}
		res := tx.Delete(&model.Parameter{}, id)
		if res.Error != nil {
			return apperr.Storage("failed to delete parameter", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("parameter %d not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		return wrapTxErr(err)
	}
	log.Info().Uint("parameterID", id).Msg("Parameter deleted")
	return nil
}

// --- Aspect ---

func (s *rubricService) CreateAspect(req dto.AspectCreateRequest) (*dto.AspectResponse, error) {
	if _, err := s.parameterRepo.FindByID(req.ParameterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("parent parameter %d not found", req.ParameterID)
		}
		return nil, apperr.Storage("failed to load parent parameter", err)
	}

	aspect := model.Aspect{ParameterID: req.ParameterID, Name: req.Name}
	if err := s.aspectRepo.Create(&aspect); err != nil {
		log.Error().Err(err).Msg("Failed to create aspect")
		return nil, apperr.Storage("failed to create aspect", err)
	}
	return &dto.AspectResponse{ID: aspect.ID, ParameterID: aspect.ParameterID, Name: aspect.Name, SubAspects: make([]dto.SubAspectResponse, 0)}, nil
}

func (s *rubricService) UpdateAspect(id uint, req dto.AspectUpdateRequest) (*dto.AspectResponse, error) {
	aspect, err := s.aspectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("aspect %d not found", id)
		}
		return nil, apperr.Storage("failed to load aspect", err)
	}

	if req.ParameterID != nil {
		if _, err := s.parameterRepo.FindByID(*req.ParameterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("new parent parameter %d not found", *req.ParameterID)
			}
			return nil, apperr.Storage("failed to load new parent parameter", err)
		}
		aspect.ParameterID = *req.ParameterID
	}
	aspect.Name = req.Name

	if err := s.aspectRepo.Update(aspect); err != nil {
		return nil, apperr.Storage("failed to update aspect", err)
	}
	return &dto.AspectResponse{ID: aspect.ID, ParameterID: aspect.ParameterID, Name: aspect.Name, SubAspects: make([]dto.SubAspectResponse, 0)}, nil
}

func (s *rubricService) DeleteAspect(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var subAspects int64
		if err := tx.Model(&model.SubAspect{}).Where("aspect_id = ?", id).Count(&subAspects).Error; err != nil {
			return apperr.Storage("failed to check aspect sub-aspects", err)
		}
		if subAspects > 0 {
			return apperr.Conflict("aspect %d still owns %d sub-aspect(s); delete them first", id, subAspects)
		}
		res := tx.Delete(&model.Aspect{}, id)
		if res.Error != nil {
			return apperr.Storage("failed to delete aspect", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("aspect %d not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		return wrapTxErr(err)
	}
	log.Info().Uint("aspectID", id).Msg("Aspect deleted")
	return nil
}

// --- Sub-aspect ---

func (s *rubricService) CreateSubAspect(req dto.SubAspectCreateRequest) (*dto.SubAspectResponse, error) {
	if _, err := s.aspectRepo.FindByID(req.AspectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("parent aspect %d not found", req.AspectID)
		}
		return nil, apperr.Storage("failed to load parent aspect", err)
	}

	subAspect := model.SubAspect{AspectID: req.AspectID, Name: req.Name}
	if err := s.subAspectRepo.Create(&subAspect); err != nil {
		log.Error().Err(err).Msg("Failed to create sub-aspect")
		return nil, apperr.Storage("failed to create sub-aspect", err)
	}
	return &dto.SubAspectResponse{ID: subAspect.ID, AspectID: subAspect.AspectID, Name: subAspect.Name}, nil
}

func (s *rubricService) UpdateSubAspect(id uint, req dto.SubAspectUpdateRequest) (*dto.SubAspectResponse, error) {
	subAspect, err := s.subAspectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sub-aspect %d not found", id)
		}
		return nil, apperr.Storage("failed to load sub-aspect", err)
	}

	if req.AspectID != nil {
		if _, err := s.aspectRepo.FindByID(*req.AspectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("new parent aspect %d not found", *req.AspectID)
			}
			return nil, apperr.Storage("failed to load new parent aspect", err)
		}
		subAspect.AspectID = *req.AspectID
	}
	subAspect.Name = req.Name

	if err := s.subAspectRepo.Update(subAspect); err != nil {
		return nil, apperr.Storage("failed to update sub-aspect", err)
	}
	return &dto.SubAspectResponse{ID: subAspect.ID, AspectID: subAspect.AspectID, Name: subAspect.Name}, nil
}

func (s *rubricService) DeleteSubAspect(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Historical-integrity guard: a sub-aspect referenced by any
		// assessment detail stays, or old gradings would dangle.
		var details int64
		if err := tx.Model(&model.AssessmentDetail{}).Where("sub_aspect_id = ?", id).Count(&details).Error; err != nil {
			return apperr.Storage("failed to check sub-aspect references", err)
		}
		if details > 0 {
			return apperr.Conflict("sub-aspect %d is referenced by existing assessment details", id)
		}
		res := tx.Delete(&model.SubAspect{}, id)
		if res.Error != nil {
			return apperr.Storage("failed to delete sub-aspect", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("sub-aspect %d not found for deletion", id)
		}
		return nil
	})
	if err != nil {
		return wrapTxErr(err)
	}
	log.Info().Uint("subAspectID", id).Msg("Sub-aspect deleted")
	return nil
}
