package service

import (
	"context"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
)

type IAdminService interface {
	DashboardCounts(ctx context.Context) (*dto.DashboardCountsResponse, error)
	GetLogs(ctx context.Context, query *dto.LogQuery) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *adminService) DashboardCounts(ctx context.Context) (*dto.DashboardCountsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	brokers, err := uow.BrokerRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	cases, err := uow.LoanCaseRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	published, err := uow.LoanCaseRepository().Count(ctx, specification.ByCaseStatus{Status: entity.CaseStatusPublished})
	if err != nil {
		return nil, err
	}
	inquiries, err := uow.InquiryRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	open, err := uow.InquiryRepository().Count(ctx, specification.Filter("status", entity.InquiryStatusNew))
	if err != nil {
		return nil, err
	}
	sessions, err := uow.ChatSessionRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardCountsResponse{
		Users:          users,
		Brokers:        brokers,
		Cases:          cases,
		PublishedCases: published,
		Inquiries:      inquiries,
		OpenInquiries:  open,
		ChatSessions:   sessions,
	}, nil
}

func (s *adminService) GetLogs(ctx context.Context, query *dto.LogQuery) ([]logger.LogEntry, error) {
	limit := query.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.logger.GetLogs(query.Level, limit, query.Offset)
}
