package contract

import (
	"context"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LoanCaseRepository interface {
	Create(ctx context.Context, loanCase *entity.LoanCase) error
	Update(ctx context.Context, loanCase *entity.LoanCase) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoanCase, error)
	// FindOneWithImages eager-loads the gallery ordered by position.
	FindOneWithImages(ctx context.Context, id uuid.UUID) (*entity.LoanCase, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoanCase, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
