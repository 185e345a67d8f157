package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/pkg/mailer"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
)

// IConsumerService drains the in-process queue and sends broker inquiry
// emails off the request path.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       log,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InquiryQueuedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("consumer", "failed to unmarshal queued message", map[string]interface{}{"error": err.Error()})
		// Ack malformed messages so they don't retry forever.
		msg.Ack()
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	inquiry, err := uow.InquiryRepository().FindOne(ctx, specification.ByID{ID: payload.InquiryId})
	if err != nil || inquiry == nil {
		s.logger.Error("consumer", "inquiry lookup failed", map[string]interface{}{
			"inquiry_id": payload.InquiryId,
		})
		msg.Ack()
		return
	}

	loanCase, err := uow.LoanCaseRepository().FindOne(ctx, specification.ByID{ID: inquiry.LoanCaseId})
	if err != nil || loanCase == nil || loanCase.BrokerId == nil {
		// No broker assigned means nobody to email.
		msg.Ack()
		return
	}

	broker, err := uow.BrokerRepository().FindOne(ctx, specification.ByID{ID: *loanCase.BrokerId})
	if err != nil || broker == nil {
		msg.Ack()
		return
	}

	borrower, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: inquiry.UserId})
	if err != nil || borrower == nil {
		msg.Ack()
		return
	}

	err = s.emailService.SendInquiryNotification(
		broker.ContactEmail,
		broker.DisplayName,
		loanCase.Title,
		borrower.FullName,
		borrower.Email,
		inquiry.Message,
	)
	if err != nil {
		s.logger.Error("consumer", "failed to send inquiry email", map[string]interface{}{
			"inquiry_id": inquiry.Id, "error": err.Error(),
		})
		msg.Nack()
		return
	}

	s.logger.Info("consumer", "inquiry email sent", map[string]interface{}{
		"inquiry_id": inquiry.Id, "broker_id": broker.Id,
	})
	msg.Ack()
}
