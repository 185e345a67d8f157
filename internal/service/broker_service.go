package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
)

var ErrBrokerNotFound = errors.New("broker not found")

type IBrokerService interface {
	Create(ctx context.Context, req *dto.CreateBrokerRequest) (*dto.BrokerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBrokerRequest) (*dto.BrokerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*dto.BrokerResponse, error)
	List(ctx context.Context, featuredOnly bool, limit, offset int) ([]*dto.BrokerResponse, int64, error)
}

type brokerService struct {
	uowFactory     unitofwork.RepositoryFactory
	galleryService IGalleryService
}

func NewBrokerService(uowFactory unitofwork.RepositoryFactory, galleryService IGalleryService) IBrokerService {
	return &brokerService{
		uowFactory:     uowFactory,
		galleryService: galleryService,
	}
}

func (s *brokerService) toResponse(ctx context.Context, broker *entity.BrokerProfile) *dto.BrokerResponse {
	resp := &dto.BrokerResponse{
		Id:            broker.Id,
		CompanyName:   broker.CompanyName,
		DisplayName:   broker.DisplayName,
		Bio:           broker.Bio,
		LicenseNumber: broker.LicenseNumber,
		Specialties:   broker.Specialties,
		ContactEmail:  broker.ContactEmail,
		ContactPhone:  broker.ContactPhone,
		Featured:      broker.Featured,
		CreatedAt:     broker.CreatedAt,
	}
	if broker.AvatarObjectKey != nil && s.galleryService != nil {
		if url, err := s.galleryService.SignedURL(ctx, *broker.AvatarObjectKey); err == nil {
			resp.AvatarURL = &url
		}
	}
	return resp
}

func (s *brokerService) Create(ctx context.Context, req *dto.CreateBrokerRequest) (*dto.BrokerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var userId *uuid.UUID
	if req.UserId != nil {
		parsed, err := uuid.Parse(*req.UserId)
		if err != nil {
			return nil, err
		}
		userId = &parsed
	}

	broker := entity.BrokerProfile{
		Id:            uuid.New(),
		UserId:        userId,
		CompanyName:   req.CompanyName,
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		LicenseNumber: req.LicenseNumber,
		Specialties:   req.Specialties,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Featured:      req.Featured,
		CreatedAt:     time.Now(),
	}

	if err := uow.BrokerRepository().Create(ctx, &broker); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, &broker), nil
}

func (s *brokerService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateBrokerRequest) (*dto.BrokerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	broker, err := uow.BrokerRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if broker == nil {
		return nil, ErrBrokerNotFound
	}

	if req.CompanyName != "" {
		broker.CompanyName = req.CompanyName
	}
	if req.DisplayName != "" {
		broker.DisplayName = req.DisplayName
	}
	if req.Bio != "" {
		broker.Bio = req.Bio
	}
	if req.LicenseNumber != "" {
		broker.LicenseNumber = req.LicenseNumber
	}
	if req.Specialties != nil {
		broker.Specialties = req.Specialties
	}
	if req.ContactEmail != "" {
		broker.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != "" {
		broker.ContactPhone = req.ContactPhone
	}
	if req.Featured != nil {
		broker.Featured = *req.Featured
	}
	now := time.Now()
	broker.UpdatedAt = &now

	if err := uow.BrokerRepository().Update(ctx, broker); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, broker), nil
}

func (s *brokerService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.BrokerRepository().Delete(ctx, id)
}

func (s *brokerService) Get(ctx context.Context, id uuid.UUID) (*dto.BrokerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	broker, err := uow.BrokerRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if broker == nil {
		return nil, ErrBrokerNotFound
	}
	return s.toResponse(ctx, broker), nil
}

func (s *brokerService) List(ctx context.Context, featuredOnly bool, limit, offset int) ([]*dto.BrokerResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	countSpecs := []specification.Specification{}
	if featuredOnly {
		specs = append(specs, specification.FeaturedOnly{})
		countSpecs = append(countSpecs, specification.FeaturedOnly{})
	}

	total, err := uow.BrokerRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, 0, err
	}

	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	brokers, err := uow.BrokerRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.BrokerResponse, 0, len(brokers))
	for _, broker := range brokers {
		result = append(result, s.toResponse(ctx, broker))
	}
	return result, total, nil
}
