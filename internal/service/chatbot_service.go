package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"lending-concierge-be/internal/constant"
	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/repository/unitofwork"
	"lending-concierge-be/pkg/llm"
)

var (
	ErrDailyLimitReached = errors.New("daily message limit reached")
	ErrSessionNotFound   = errors.New("session not found")
)

// ChatQuota caps how many messages a user can send per day. Satisfied by
// ratelimit.DailyLimiter.
type ChatQuota interface {
	Allow(ctx context.Context, userId string) (bool, int, error)
	Remaining(ctx context.Context, userId string) (int, error)
}

// IChatbotService is the HTTP-facing concierge chat surface. It proxies
// completions to the LLM provider and delegates all session bookkeeping to
// the session service.
type IChatbotService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetQuota(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error)
	GetActiveSession(ctx context.Context, userId uuid.UUID) (*dto.ChatSessionResponse, error)
	ResetChat(ctx context.Context, userId uuid.UUID) (*dto.ResetSessionResponse, error)
	ArchiveSession(ctx context.Context, userId, sessionId uuid.UUID) error
	UpdateContext(ctx context.Context, userId, sessionId uuid.UUID, req *dto.UpdateContextRequest) error
}

type chatbotService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionService IChatSessionService
	llmProvider    llm.Provider
	limiter        ChatQuota
	logger         logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	sessionService IChatSessionService,
	llmProvider llm.Provider,
	limiter ChatQuota,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:     uowFactory,
		sessionService: sessionService,
		llmProvider:    llmProvider,
		limiter:        limiter,
		logger:         log,
	}
}

type sessionContext struct {
	LastMessageAt time.Time `json:"last_message_at"`
	Provider      string    `json:"provider"`
	Turns         int       `json:"turns"`
}

func (s *chatbotService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	allowed, remaining, err := s.limiter.Allow(ctx, userId.String())
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrDailyLimitReached
	}

	session, err := s.sessionService.GetOrCreateActiveSession(ctx, userId, nil)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessionService.AppendMessage(ctx, session.Id, entity.MessageSenderUser, req.Message, nil); err != nil {
		return nil, err
	}

	history, err := s.sessionService.FetchRecentMessages(ctx, session.Id, constant.RecentMessageWindow)
	if err != nil {
		return nil, err
	}

	prompt := make([]llm.Message, 0, len(history)+1)
	prompt = append(prompt, llm.Message{Role: llm.RoleSystem, Content: constant.ConciergeSystemPromptV1})
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == entity.MessageSenderAssistant {
			role = llm.RoleAssistant
		}
		prompt = append(prompt, llm.Message{Role: role, Content: m.Content})
	}

	reply, err := s.llmProvider.Chat(ctx, prompt)
	if err != nil {
		s.logger.Error("chatbot", "llm call failed", map[string]interface{}{
			"session_id": session.Id, "error": err.Error(),
		})
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]string{"provider": s.llmProvider.Name()})
	if _, err := s.sessionService.AppendMessage(ctx, session.Id, entity.MessageSenderAssistant, reply, metadata); err != nil {
		return nil, err
	}

	// Prior turns plus the two just written.
	newContext, _ := json.Marshal(sessionContext{
		LastMessageAt: time.Now(),
		Provider:      s.llmProvider.Name(),
		Turns:         len(history) + 1,
	})
	if err := s.sessionService.UpdateSessionContext(ctx, session.Id, newContext); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		SessionId: session.Id,
		Reply:     reply,
		Remaining: remaining,
	}, nil
}

// GetQuota reports how many messages the user has left today without
// consuming one.
func (s *chatbotService) GetQuota(ctx context.Context, userId uuid.UUID) (*dto.QuotaStatusResponse, error) {
	remaining, err := s.limiter.Remaining(ctx, userId.String())
	if err != nil {
		return nil, err
	}
	return &dto.QuotaStatusResponse{Remaining: remaining}, nil
}

func toSessionResponse(session *entity.ChatSession) *dto.ChatSessionResponse {
	resp := &dto.ChatSessionResponse{
		Id:        session.Id,
		Status:    string(session.Status),
		Context:   session.Context,
		CreatedAt: session.CreatedAt,
		Messages:  make([]dto.ChatMessageResponse, 0, len(session.Messages)),
	}
	for _, m := range session.Messages {
		resp.Messages = append(resp.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Sender:    string(m.Sender),
			Content:   m.Content,
			Metadata:  m.Metadata,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp
}

func (s *chatbotService) GetActiveSession(ctx context.Context, userId uuid.UUID) (*dto.ChatSessionResponse, error) {
	session, err := s.sessionService.FetchActiveSessionWithMessages(ctx, userId)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *chatbotService) ResetChat(ctx context.Context, userId uuid.UUID) (*dto.ResetSessionResponse, error) {
	session, archived, err := s.sessionService.ResetSession(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.ResetSessionResponse{
		Session:  *toSessionResponse(session),
		Archived: archived,
	}, nil
}

// ArchiveSession checks ownership before delegating; the session service
// itself archives by id without an owner check.
func (s *chatbotService) ArchiveSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindByIdForUser(ctx, sessionId, userId)
	if err != nil {
		return err
	}
	if session == nil {
		// Idempotent surface: archiving a session you don't have is a no-op.
		return nil
	}
	return s.sessionService.ArchiveSession(ctx, sessionId)
}

func (s *chatbotService) UpdateContext(ctx context.Context, userId, sessionId uuid.UUID, req *dto.UpdateContextRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindByIdForUser(ctx, sessionId, userId)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	return s.sessionService.UpdateSessionContext(ctx, sessionId, req.Context)
}
