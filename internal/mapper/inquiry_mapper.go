package mapper

import (
	"time"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/model"
)

type InquiryMapper struct{}

func NewInquiryMapper() *InquiryMapper {
	return &InquiryMapper{}
}

func (m *InquiryMapper) ToEntity(i *model.Inquiry) *entity.Inquiry {
	if i == nil {
		return nil
	}

	var updatedAt *time.Time
	if !i.UpdatedAt.IsZero() {
		t := i.UpdatedAt
		updatedAt = &t
	}

	return &entity.Inquiry{
		Id:           i.Id,
		LoanCaseId:   i.LoanCaseId,
		UserId:       i.UserId,
		Message:      i.Message,
		ContactPhone: i.ContactPhone,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *InquiryMapper) ToModel(i *entity.Inquiry) *model.Inquiry {
	if i == nil {
		return nil
	}

	var updatedAt time.Time
	if i.UpdatedAt != nil {
		updatedAt = *i.UpdatedAt
	}

	return &model.Inquiry{
		Id:           i.Id,
		LoanCaseId:   i.LoanCaseId,
		UserId:       i.UserId,
		Message:      i.Message,
		ContactPhone: i.ContactPhone,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *InquiryMapper) ToEntities(models []*model.Inquiry) []*entity.Inquiry {
	entities := make([]*entity.Inquiry, len(models))
	for i, inq := range models {
		entities[i] = m.ToEntity(inq)
	}
	return entities
}
