package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
	"lending-concierge-be/pkg/events"
	pktNats "lending-concierge-be/pkg/nats"
)

var (
	ErrCaseNotFound     = errors.New("case not found")
	ErrCaseNotPublished = errors.New("case is not published")
)

type ICaseService interface {
	Create(ctx context.Context, req *dto.CreateCaseRequest) (*dto.CaseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCaseRequest) (*dto.CaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) (*dto.CaseResponse, error)
	Close(ctx context.Context, id uuid.UUID) (*dto.CaseResponse, error)
	// Get returns the case with its gallery. Public callers only see
	// published cases; admin callers see everything.
	Get(ctx context.Context, id uuid.UUID, includeUnpublished bool) (*dto.CaseResponse, error)
	List(ctx context.Context, query *dto.CaseListQuery, includeUnpublished bool) ([]*dto.CaseResponse, int64, error)
}

type caseService struct {
	uowFactory     unitofwork.RepositoryFactory
	galleryService IGalleryService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewCaseService(
	uowFactory unitofwork.RepositoryFactory,
	galleryService IGalleryService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ICaseService {
	return &caseService{
		uowFactory:     uowFactory,
		galleryService: galleryService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *caseService) toResponse(ctx context.Context, loanCase *entity.LoanCase, withImages bool) *dto.CaseResponse {
	resp := &dto.CaseResponse{
		Id:           loanCase.Id,
		Title:        loanCase.Title,
		Summary:      loanCase.Summary,
		Description:  loanCase.Description,
		LoanAmount:   loanCase.LoanAmount,
		InterestRate: loanCase.InterestRate,
		TermMonths:   loanCase.TermMonths,
		PropertyType: loanCase.PropertyType,
		Region:       loanCase.Region,
		Status:       loanCase.Status,
		BrokerId:     loanCase.BrokerId,
		PublishedAt:  loanCase.PublishedAt,
		CreatedAt:    loanCase.CreatedAt,
	}
	if withImages {
		images, err := s.galleryService.ListImages(ctx, loanCase.Id)
		if err != nil {
			s.logger.Warn("case", "failed to load gallery", map[string]interface{}{
				"case_id": loanCase.Id, "error": err.Error(),
			})
		} else {
			resp.Images = images
		}
	}
	return resp
}

func (s *caseService) Create(ctx context.Context, req *dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var brokerId *uuid.UUID
	if req.BrokerId != nil {
		parsed, err := uuid.Parse(*req.BrokerId)
		if err != nil {
			return nil, err
		}
		broker, err := uow.BrokerRepository().FindOne(ctx, specification.ByID{ID: parsed})
		if err != nil {
			return nil, err
		}
		if broker == nil {
			return nil, ErrBrokerNotFound
		}
		brokerId = &parsed
	}

	loanCase := entity.LoanCase{
		Id:           uuid.New(),
		Title:        req.Title,
		Summary:      req.Summary,
		Description:  req.Description,
		LoanAmount:   req.LoanAmount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
		PropertyType: req.PropertyType,
		Region:       req.Region,
		Status:       entity.CaseStatusDraft,
		BrokerId:     brokerId,
		CreatedAt:    time.Now(),
	}

	if err := uow.LoanCaseRepository().Create(ctx, &loanCase); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, &loanCase, false), nil
}

func (s *caseService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCaseRequest) (*dto.CaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	loanCase, err := uow.LoanCaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if loanCase == nil {
		return nil, ErrCaseNotFound
	}

	if req.Title != "" {
		loanCase.Title = req.Title
	}
	if req.Summary != "" {
		loanCase.Summary = req.Summary
	}
	if req.Description != "" {
		loanCase.Description = req.Description
	}
	if req.LoanAmount != nil {
		loanCase.LoanAmount = *req.LoanAmount
	}
	if req.InterestRate != nil {
		loanCase.InterestRate = *req.InterestRate
	}
	if req.TermMonths != nil {
		loanCase.TermMonths = *req.TermMonths
	}
	if req.PropertyType != "" {
		loanCase.PropertyType = req.PropertyType
	}
	if req.Region != "" {
		loanCase.Region = req.Region
	}
	if req.BrokerId != nil {
		parsed, err := uuid.Parse(*req.BrokerId)
		if err != nil {
			return nil, err
		}
		broker, err := uow.BrokerRepository().FindOne(ctx, specification.ByID{ID: parsed})
		if err != nil {
			return nil, err
		}
		if broker == nil {
			return nil, ErrBrokerNotFound
		}
		loanCase.BrokerId = &parsed
	}
	now := time.Now()
	loanCase.UpdatedAt = &now

	if err := uow.LoanCaseRepository().Update(ctx, loanCase); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, loanCase, false), nil
}

func (s *caseService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.LoanCaseRepository().Delete(ctx, id)
}

func (s *caseService) setStatus(ctx context.Context, id uuid.UUID, status string) (*entity.LoanCase, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	loanCase, err := uow.LoanCaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if loanCase == nil {
		return nil, ErrCaseNotFound
	}

	now := time.Now()
	loanCase.Status = status
	loanCase.UpdatedAt = &now
	if status == entity.CaseStatusPublished && loanCase.PublishedAt == nil {
		loanCase.PublishedAt = &now
	}

	if err := uow.LoanCaseRepository().Update(ctx, loanCase); err != nil {
		return nil, err
	}
	return loanCase, nil
}

func (s *caseService) Publish(ctx context.Context, id uuid.UUID) (*dto.CaseResponse, error) {
	loanCase, err := s.setStatus(ctx, id, entity.CaseStatusPublished)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.NewCasePublished(loanCase.Id, loanCase.BrokerId, loanCase.Title)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("case", "failed to publish case published event", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.toResponse(ctx, loanCase, false), nil
}

func (s *caseService) Close(ctx context.Context, id uuid.UUID) (*dto.CaseResponse, error) {
	loanCase, err := s.setStatus(ctx, id, entity.CaseStatusClosed)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, loanCase, false), nil
}

func (s *caseService) Get(ctx context.Context, id uuid.UUID, includeUnpublished bool) (*dto.CaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	loanCase, err := uow.LoanCaseRepository().FindOneWithImages(ctx, id)
	if err != nil {
		return nil, err
	}
	if loanCase == nil {
		return nil, ErrCaseNotFound
	}
	if !includeUnpublished && loanCase.Status != entity.CaseStatusPublished {
		return nil, ErrCaseNotFound
	}
	return s.toResponse(ctx, loanCase, true), nil
}

func (s *caseService) List(ctx context.Context, query *dto.CaseListQuery, includeUnpublished bool) ([]*dto.CaseResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filters := []specification.Specification{}
	if query.Region != "" {
		filters = append(filters, specification.ByRegion{Region: query.Region})
	}
	if query.PropertyType != "" {
		filters = append(filters, specification.Filter("property_type", query.PropertyType))
	}
	if includeUnpublished {
		if query.Status != "" {
			filters = append(filters, specification.ByCaseStatus{Status: query.Status})
		}
	} else {
		filters = append(filters, specification.ByCaseStatus{Status: entity.CaseStatusPublished})
	}

	total, err := uow.LoanCaseRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Offset},
	)
	cases, err := uow.LoanCaseRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.CaseResponse, 0, len(cases))
	for _, loanCase := range cases {
		result = append(result, s.toResponse(ctx, loanCase, false))
	}
	return result, total, nil
}
