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

type BrokerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BrokerMapper
}

func NewBrokerRepository(db *gorm.DB) contract.BrokerRepository {
	return &BrokerRepositoryImpl{
		db:     db,
		mapper: mapper.NewBrokerMapper(),
	}
}

func (r *BrokerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BrokerRepositoryImpl) Create(ctx context.Context, broker *entity.BrokerProfile) error {
	m := r.mapper.ToModel(broker)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*broker = *r.mapper.ToEntity(m)
	return nil
}

func (r *BrokerRepositoryImpl) Update(ctx context.Context, broker *entity.BrokerProfile) error {
	m := r.mapper.ToModel(broker)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*broker = *r.mapper.ToEntity(m)
	return nil
}

func (r *BrokerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BrokerProfile{}, id).Error
}

func (r *BrokerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BrokerProfile, error) {
	var m model.BrokerProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BrokerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BrokerProfile, error) {
	var models []*model.BrokerProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BrokerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BrokerProfile{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
