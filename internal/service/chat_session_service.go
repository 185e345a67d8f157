package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"lending-concierge-be/internal/constant"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/contract"
	"lending-concierge-be/internal/repository/unitofwork"
)

// IChatSessionService owns the lifecycle of concierge chat sessions. It does
// no input validation and no retries; storage faults propagate to the caller.
type IChatSessionService interface {
	// GetOrCreateActiveSession resolves the session new messages should go
	// to. With an explicit sessionId that belongs to the user, that session
	// is reactivated if needed and returned. Otherwise the newest ACTIVE
	// session is returned, or a fresh one is created. At most one write.
	GetOrCreateActiveSession(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID) (*entity.ChatSession, error)

	// ArchiveSession is idempotent: archiving an archived or nonexistent
	// session is a no-op.
	ArchiveSession(ctx context.Context, sessionId uuid.UUID) error

	// AppendMessage inserts one turn and returns it with generated fields.
	AppendMessage(ctx context.Context, sessionId uuid.UUID, sender entity.MessageSender, content string, metadata json.RawMessage) (*entity.ChatMessage, error)

	// FetchRecentMessages returns the take most recent messages in
	// chronological order. take <= 0 falls back to the default window.
	FetchRecentMessages(ctx context.Context, sessionId uuid.UUID, take int) ([]*entity.ChatMessage, error)

	// FetchActiveSessionWithMessages returns the newest ACTIVE session with
	// its messages eager-loaded, creating a fresh session when none exists.
	FetchActiveSessionWithMessages(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)

	// ResetSession archives every ACTIVE session of the user and starts a
	// new one. Returns the new session and how many were archived.
	ResetSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, int64, error)

	// UpdateSessionContext replaces the session context wholesale.
	UpdateSessionContext(ctx context.Context, sessionId uuid.UUID, sessionContext json.RawMessage) error
}

type chatSessionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatSessionService(uowFactory unitofwork.RepositoryFactory) IChatSessionService {
	return &chatSessionService{
		uowFactory: uowFactory,
	}
}

func (s *chatSessionService) GetOrCreateActiveSession(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	if sessionId != nil {
		session, err := sessions.FindByIdForUser(ctx, *sessionId, userId)
		if err != nil {
			return nil, err
		}
		if session != nil {
			if session.Status == entity.SessionStatusActive {
				return session, nil
			}
			if !session.Status.CanTransitionTo(entity.SessionStatusActive) {
				return nil, fmt.Errorf("session %s cannot transition from %s to %s", session.Id, session.Status, entity.SessionStatusActive)
			}
			if err := sessions.UpdateStatus(ctx, session.Id, entity.SessionStatusActive); err != nil {
				return nil, err
			}
			session.Status = entity.SessionStatusActive
			return session, nil
		}
		// Unknown or foreign id falls through to the default lookup.
	}

	session, err := sessions.FindLatestActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	return s.createSession(ctx, sessions, userId)
}

func (s *chatSessionService) ArchiveSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().UpdateStatus(ctx, sessionId, entity.SessionStatusArchived)
}

func (s *chatSessionService) AppendMessage(ctx context.Context, sessionId uuid.UUID, sender entity.MessageSender, content string, metadata json.RawMessage) (*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Id and CreatedAt stay zero; the store assigns them so created_at
	// ordering does not depend on app-instance clocks.
	message := entity.ChatMessage{
		ChatSessionId: sessionId,
		Sender:        sender,
		Content:       content,
		Metadata:      metadata,
	}

	if err := uow.ChatMessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *chatSessionService) FetchRecentMessages(ctx context.Context, sessionId uuid.UUID, take int) ([]*entity.ChatMessage, error) {
	if take <= 0 {
		take = constant.RecentMessageWindow
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindRecentBySession(ctx, sessionId, take)
	if err != nil {
		return nil, err
	}

	// The store returns newest first; flip to reading order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *chatSessionService) FetchActiveSessionWithMessages(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	session, err := sessions.FindLatestActiveByUserWithMessages(ctx, userId, constant.HistoryMessageLimit)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session, err = s.createSession(ctx, sessions, userId)
	if err != nil {
		return nil, err
	}
	session.Messages = make([]*entity.ChatMessage, 0)
	return session, nil
}

func (s *chatSessionService) ResetSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	// Batch archive first, then insert. The two writes are deliberately not
	// wrapped in a transaction; a fault between them leaves the user with no
	// ACTIVE session, which the next GetOrCreateActiveSession heals.
	archived, err := sessions.ArchiveAllActiveByUser(ctx, userId)
	if err != nil {
		return nil, 0, err
	}

	session, err := s.createSession(ctx, sessions, userId)
	if err != nil {
		return nil, archived, err
	}
	return session, archived, nil
}

func (s *chatSessionService) UpdateSessionContext(ctx context.Context, sessionId uuid.UUID, sessionContext json.RawMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().UpdateContext(ctx, sessionId, sessionContext)
}

func (s *chatSessionService) createSession(ctx context.Context, sessions contract.ChatSessionRepository, userId uuid.UUID) (*entity.ChatSession, error) {
	session := entity.ChatSession{
		UserId: userId,
		Status: entity.SessionStatusActive,
	}
	if err := sessions.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
