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

type LoanCaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseMapper
}

func NewLoanCaseRepository(db *gorm.DB) contract.LoanCaseRepository {
	return &LoanCaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCaseMapper(),
	}
}

func (r *LoanCaseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LoanCaseRepositoryImpl) Create(ctx context.Context, loanCase *entity.LoanCase) error {
	m := r.mapper.ToModel(loanCase)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*loanCase = *r.mapper.ToEntity(m)
	return nil
}

func (r *LoanCaseRepositoryImpl) Update(ctx context.Context, loanCase *entity.LoanCase) error {
	m := r.mapper.ToModel(loanCase)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*loanCase = *r.mapper.ToEntity(m)
	return nil
}

func (r *LoanCaseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.LoanCase{}, id).Error
}

func (r *LoanCaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoanCase, error) {
	var m model.LoanCase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LoanCaseRepositoryImpl) FindOneWithImages(ctx context.Context, id uuid.UUID) (*entity.LoanCase, error) {
	var m model.LoanCase
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LoanCaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoanCase, error) {
	var models []*model.LoanCase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LoanCaseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LoanCase{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
