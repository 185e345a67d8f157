package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
	"lending-concierge-be/internal/websocket"
	"lending-concierge-be/pkg/events"
	pktNats "lending-concierge-be/pkg/nats"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

type IInquiryService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInquiryRequest) (*dto.InquiryResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateInquiryStatusRequest) error
	ListByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.InquiryResponse, int64, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]*dto.InquiryResponse, int64, error)
}

type inquiryService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	hub              *websocket.Hub
	logger           logger.ILogger
}

func NewInquiryService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	hub *websocket.Hub,
	log logger.ILogger,
) IInquiryService {
	return &inquiryService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		hub:              hub,
		logger:           log,
	}
}

func toInquiryResponse(inquiry *entity.Inquiry) *dto.InquiryResponse {
	return &dto.InquiryResponse{
		Id:           inquiry.Id,
		CaseId:       inquiry.LoanCaseId,
		UserId:       inquiry.UserId,
		Message:      inquiry.Message,
		ContactPhone: inquiry.ContactPhone,
		Status:       inquiry.Status,
		CreatedAt:    inquiry.CreatedAt,
	}
}

func (s *inquiryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInquiryRequest) (*dto.InquiryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	caseId, err := uuid.Parse(req.CaseId)
	if err != nil {
		return nil, err
	}

	loanCase, err := uow.LoanCaseRepository().FindOne(ctx, specification.ByID{ID: caseId})
	if err != nil {
		return nil, err
	}
	if loanCase == nil {
		return nil, ErrCaseNotFound
	}
	if loanCase.Status != entity.CaseStatusPublished {
		return nil, ErrCaseNotPublished
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	inquiry := entity.Inquiry{
		Id:           uuid.New(),
		LoanCaseId:   caseId,
		UserId:       userId,
		Message:      req.Message,
		ContactPhone: req.ContactPhone,
		Status:       entity.InquiryStatusNew,
		CreatedAt:    time.Now(),
	}
	if err := uow.InquiryRepository().Create(ctx, &inquiry); err != nil {
		return nil, err
	}

	// Email delivery is slow; hand it to the consumer.
	queued, err := json.Marshal(dto.InquiryQueuedMessage{InquiryId: inquiry.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, queued); err != nil {
		s.logger.Error("inquiry", "failed to queue inquiry email", map[string]interface{}{
			"inquiry_id": inquiry.Id, "error": err.Error(),
		})
	}

	if s.eventPublisher != nil {
		event := events.NewInquiryCreated(inquiry.Id, caseId, loanCase.BrokerId, user.FullName, user.Email, req.Message)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("inquiry", "failed to publish inquiry created event", map[string]interface{}{"error": err.Error()})
		}
	}

	// Live notification for the broker, when they have a login.
	if s.hub != nil && loanCase.BrokerId != nil {
		broker, err := uow.BrokerRepository().FindOne(ctx, specification.ByID{ID: *loanCase.BrokerId})
		if err == nil && broker != nil && broker.UserId != nil {
			s.hub.Send(*broker.UserId, websocket.Notification{
				Kind:    "inquiry_created",
				Title:   "New inquiry",
				Message: "A borrower sent an inquiry on " + loanCase.Title,
				Data: map[string]interface{}{
					"inquiry_id": inquiry.Id,
					"case_id":    caseId,
				},
			})
		}
	}

	return toInquiryResponse(&inquiry), nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateInquiryStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	inquiry, err := uow.InquiryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if inquiry == nil {
		return ErrInquiryNotFound
	}

	return uow.InquiryRepository().UpdateStatus(ctx, id, req.Status)
}

func (s *inquiryService) ListByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.InquiryResponse, int64, error) {
	return s.list(ctx, []specification.Specification{specification.UserOwnedBy{UserID: userId}}, limit, offset)
}

func (s *inquiryService) ListAll(ctx context.Context, status string, limit, offset int) ([]*dto.InquiryResponse, int64, error) {
	filters := []specification.Specification{}
	if status != "" {
		filters = append(filters, specification.Filter("status", status))
	}
	return s.list(ctx, filters, limit, offset)
}

func (s *inquiryService) list(ctx context.Context, filters []specification.Specification, limit, offset int) ([]*dto.InquiryResponse, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	total, err := uow.InquiryRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	inquiries, err := uow.InquiryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.InquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		result = append(result, toInquiryResponse(inquiry))
	}
	return result, total, nil
}
