package mapper

import (
	"time"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/model"

	"gorm.io/gorm"
)

type CaseMapper struct{}

func NewCaseMapper() *CaseMapper {
	return &CaseMapper{}
}

func (m *CaseMapper) ToEntity(c *model.LoanCase) *entity.LoanCase {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	images := make([]*entity.CaseImage, 0, len(c.Images))
	for i := range c.Images {
		images = append(images, m.ImageToEntity(&c.Images[i]))
	}

	return &entity.LoanCase{
		Id:           c.Id,
		Title:        c.Title,
		Summary:      c.Summary,
		Description:  c.Description,
		LoanAmount:   c.LoanAmount,
		InterestRate: c.InterestRate,
		TermMonths:   c.TermMonths,
		PropertyType: c.PropertyType,
		Region:       c.Region,
		Status:       c.Status,
		BrokerId:     c.BrokerId,
		PublishedAt:  c.PublishedAt,
		Images:       images,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    c.DeletedAt.Valid,
	}
}

func (m *CaseMapper) ToModel(c *entity.LoanCase) *model.LoanCase {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.LoanCase{
		Id:           c.Id,
		Title:        c.Title,
		Summary:      c.Summary,
		Description:  c.Description,
		LoanAmount:   c.LoanAmount,
		InterestRate: c.InterestRate,
		TermMonths:   c.TermMonths,
		PropertyType: c.PropertyType,
		Region:       c.Region,
		Status:       c.Status,
		BrokerId:     c.BrokerId,
		PublishedAt:  c.PublishedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *CaseMapper) ToEntities(models []*model.LoanCase) []*entity.LoanCase {
	entities := make([]*entity.LoanCase, len(models))
	for i, c := range models {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *CaseMapper) ImageToEntity(img *model.CaseImage) *entity.CaseImage {
	if img == nil {
		return nil
	}
	return &entity.CaseImage{
		Id:          img.Id,
		LoanCaseId:  img.LoanCaseId,
		ObjectKey:   img.ObjectKey,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		Position:    img.Position,
		Caption:     img.Caption,
		CreatedAt:   img.CreatedAt,
	}
}

func (m *CaseMapper) ImageToModel(img *entity.CaseImage) *model.CaseImage {
	if img == nil {
		return nil
	}
	return &model.CaseImage{
		Id:          img.Id,
		LoanCaseId:  img.LoanCaseId,
		ObjectKey:   img.ObjectKey,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		Position:    img.Position,
		Caption:     img.Caption,
		CreatedAt:   img.CreatedAt,
	}
}
