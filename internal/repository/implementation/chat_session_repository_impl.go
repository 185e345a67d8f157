package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/mapper"
	"lending-concierge-be/internal/model"
	"lending-concierge-be/internal/repository/contract"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.ChatSessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ChatSessionToEntity(m)
	return nil
}

func (r *ChatSessionRepositoryImpl) Update(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.ChatSessionToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ChatSessionToEntity(m)
	return nil
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatSessionToEntity(&m), nil
}

func (r *ChatSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var models []*model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatSession, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ChatSessionToEntity(m)
	}
	return entities, nil
}

func (r *ChatSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatSessionRepositoryImpl) FindByIdForUser(ctx context.Context, id, userId uuid.UUID) (*entity.ChatSession, error) {
	return r.FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
}

func (r *ChatSessionRepositoryImpl) FindLatestActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	return r.FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySessionStatus{Status: entity.SessionStatusActive},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (r *ChatSessionRepositoryImpl) FindLatestActiveByUserWithMessages(ctx context.Context, userId uuid.UUID, messageLimit int) (*entity.ChatSession, error) {
	var m model.ChatSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("status = ?", string(entity.SessionStatusActive)).
		Order("created_at DESC").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Limit(messageLimit)
		}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatSessionToEntity(&m), nil
}

func (r *ChatSessionRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SessionStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *ChatSessionRepositoryImpl) ArchiveAllActiveByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("user_id = ?", userId).
		Where("status = ?", string(entity.SessionStatusActive)).
		Update("status", string(entity.SessionStatusArchived))
	return res.RowsAffected, res.Error
}

func (r *ChatSessionRepositoryImpl) UpdateContext(ctx context.Context, id uuid.UUID, context json.RawMessage) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ?", id).
		Update("context", datatypes.JSON(context)).Error
}
