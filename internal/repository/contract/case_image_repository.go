package contract

import (
	"context"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CaseImageRepository interface {
	Create(ctx context.Context, image *entity.CaseImage) error
	Update(ctx context.Context, image *entity.CaseImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CaseImage, error)
	FindAllByCase(ctx context.Context, loanCaseId uuid.UUID) ([]*entity.CaseImage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
