package implementation

import (
	"context"
	"errors"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/mapper"
	"lending-concierge-be/internal/model"
	"lending-concierge-be/internal/repository/contract"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseMapper
}

func NewCaseImageRepository(db *gorm.DB) contract.CaseImageRepository {
	return &CaseImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewCaseMapper(),
	}
}

func (r *CaseImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CaseImageRepositoryImpl) Create(ctx context.Context, image *entity.CaseImage) error {
	m := r.mapper.ImageToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*image = *r.mapper.ImageToEntity(m)
	return nil
}

func (r *CaseImageRepositoryImpl) Update(ctx context.Context, image *entity.CaseImage) error {
	m := r.mapper.ImageToModel(image)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *CaseImageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CaseImage{}, id).Error
}

func (r *CaseImageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CaseImage, error) {
	var m model.CaseImage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ImageToEntity(&m), nil
}

func (r *CaseImageRepositoryImpl) FindAllByCase(ctx context.Context, loanCaseId uuid.UUID) ([]*entity.CaseImage, error) {
	var models []*model.CaseImage
	err := r.db.WithContext(ctx).
		Where("loan_case_id = ?", loanCaseId).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.CaseImage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ImageToEntity(m)
	}
	return entities, nil
}

func (r *CaseImageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CaseImage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
