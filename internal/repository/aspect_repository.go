package repository

import (
	"github.com/nandaakram/chapter-assessment/internal/model"
	"gorm.io/gorm"
)

type AspectRepository interface {
	Create(aspect *model.Aspect) error
	FindByID(id uint) (*model.Aspect, error)
	Update(aspect *model.Aspect) error
}

type aspectRepository struct {
	db *gorm.DB
}

func NewAspectRepository(db *gorm.DB) AspectRepository {
	return &aspectRepository{db: db}
}

func (r *aspectRepository) Create(aspect *model.Aspect) error {
	return r.db.Create(aspect).Error
}

func (r *aspectRepository) FindByID(id uint) (*model.Aspect, error) {
	var aspect model.Aspect
	if err := r.db.First(&aspect, id).Error; err != nil {
		return nil, err
	}
	return &aspect, nil
}

func (r *aspectRepository) Update(aspect *model.Aspect) error {
	return r.db.Save(aspect).Error
}
