package contract

import (
	"context"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Inquiry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Inquiry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
