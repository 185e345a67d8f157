package contract

import (
	"context"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BrokerRepository interface {
	Create(ctx context.Context, broker *entity.BrokerProfile) error
	Update(ctx context.Context, broker *entity.BrokerProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BrokerProfile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BrokerProfile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
