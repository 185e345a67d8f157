package unitofwork

import (
	"context"

	"lending-concierge-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BrokerRepository() contract.BrokerRepository
	LoanCaseRepository() contract.LoanCaseRepository
	CaseImageRepository() contract.CaseImageRepository
	InquiryRepository() contract.InquiryRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
