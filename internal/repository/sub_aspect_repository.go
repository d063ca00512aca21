package repository

import (
	"github.com/nandaakram/chapter-assessment/internal/model"
	"gorm.io/gorm"
)

type SubAspectRepository interface {
	Create(subAspect *model.SubAspect) error
	FindByID(id uint) (*model.SubAspect, error)
	Update(subAspect *model.SubAspect) error
}

type subAspectRepository struct {
	db *gorm.DB
}

func NewSubAspectRepository(db *gorm.DB) SubAspectRepository {
	return &subAspectRepository{db: db}
}

func (r *subAspectRepository) Create(subAspect *model.SubAspect) error {
	return r.db.Create(subAspect).Error
}

func (r *subAspectRepository) FindByID(id uint) (*model.SubAspect, error) {
	var subAspect model.SubAspect
	if err := r.db.First(&subAspect, id).Error; err != nil {
		return nil, err
	}
	return &subAspect, nil
}

func (r *subAspectRepository) Update(subAspect *model.SubAspect) error {
	return r.db.Save(subAspect).Error
}
