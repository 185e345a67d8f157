package mapper

import (
	"encoding/json"
	"time"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BrokerMapper struct{}

func NewBrokerMapper() *BrokerMapper {
	return &BrokerMapper{}
}

func (m *BrokerMapper) ToEntity(b *model.BrokerProfile) *entity.BrokerProfile {
	if b == nil {
		return nil
	}

	var deletedAt *time.Time
	if b.DeletedAt.Valid {
		t := b.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	var specialties []string
	if len(b.Specialties) > 0 {
		// Ignore malformed blobs; an empty list is the safe fallback
		_ = json.Unmarshal(b.Specialties, &specialties)
	}

	return &entity.BrokerProfile{
		Id:              b.Id,
		UserId:          b.UserId,
		CompanyName:     b.CompanyName,
		DisplayName:     b.DisplayName,
		Bio:             b.Bio,
		LicenseNumber:   b.LicenseNumber,
		Specialties:     specialties,
		ContactEmail:    b.ContactEmail,
		ContactPhone:    b.ContactPhone,
		AvatarObjectKey: b.AvatarObjectKey,
		Featured:        b.Featured,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       b.DeletedAt.Valid,
	}
}

func (m *BrokerMapper) ToModel(b *entity.BrokerProfile) *model.BrokerProfile {
	if b == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if b.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *b.DeletedAt, Valid: true}
	} else if b.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	var specialties datatypes.JSON
	if b.Specialties != nil {
		raw, err := json.Marshal(b.Specialties)
		if err == nil {
			specialties = datatypes.JSON(raw)
		}
	}

	return &model.BrokerProfile{
		Id:              b.Id,
		UserId:          b.UserId,
		CompanyName:     b.CompanyName,
		DisplayName:     b.DisplayName,
		Bio:             b.Bio,
		LicenseNumber:   b.LicenseNumber,
		Specialties:     specialties,
		ContactEmail:    b.ContactEmail,
		ContactPhone:    b.ContactPhone,
		AvatarObjectKey: b.AvatarObjectKey,
		Featured:        b.Featured,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *BrokerMapper) ToEntities(models []*model.BrokerProfile) []*entity.BrokerProfile {
	entities := make([]*entity.BrokerProfile, len(models))
	for i, b := range models {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
