package repository

import (
	"github.com/nandaakram/chapter-assessment/internal/model"
	"gorm.io/gorm"
)

type ParameterRepository interface {
	Create(parameter *model.Parameter) error
	FindByID(id uint) (*model.Parameter, error)
	// FindAllWithTree returns the full rubric ordered by parameter id, then
	// aspect id, then sub-aspect id. The tree builder depends on this order.
	FindAllWithTree() ([]model.Parameter, error)
	Update(parameter *model.Parameter) error
}

type parameterRepository struct {
	db *gorm.DB
}

func NewParameterRepository(db *gorm.DB) ParameterRepository {
	return &parameterRepository{db: db}
}

func (r *parameterRepository) Create(parameter *model.Parameter) error {
	return r.db.Create(parameter).Error
}

func (r *parameterRepository) FindByID(id uint) (*model.Parameter, error) {
	var parameter model.Parameter
	if err := r.db.First(&parameter, id).Error; err != nil {
		return nil, err
	}
	return &parameter, nil
}

func (r *parameterRepository) FindAllWithTree() ([]model.Parameter, error) {
	var parameters []model.Parameter
	err := r.db.
		Preload("Aspects", func(db *gorm.DB) *gorm.DB {
			return db.Order("aspects.id ASC")
		}).
		Preload("Aspects.SubAspects", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_aspects.id ASC")
		}).
		Order("parameters.id ASC").
		Find(&parameters).Error
	return parameters, err
}

func (r *parameterRepository) Update(parameter *model.Parameter) error {
	return r.db.Save(parameter).Error
}
