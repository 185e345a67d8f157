package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-concierge-be/internal/constant"
	"lending-concierge-be/internal/dto"
	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/pkg/llm"
)

type fakeQuota struct {
	allowed   bool
	remaining int
	err       error
}

func (q *fakeQuota) Allow(context.Context, string) (bool, int, error) {
	return q.allowed, q.remaining, q.err
}

func (q *fakeQuota) Remaining(context.Context, string) (int, error) {
	return q.remaining, q.err
}

type fakeProvider struct {
	reply      string
	err        error
	lastPrompt []llm.Message
}

func (p *fakeProvider) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	p.lastPrompt = messages
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *fakeProvider) Name() string { return "fake" }

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newChatbotFixture(quota *fakeQuota, provider *fakeProvider) (IChatbotService, *fakeChatSessionRepo, *fakeChatMessageRepo) {
	factory, sessionRepo, msgRepo := newFakeFactory()
	sessionService := NewChatSessionService(factory)
	svc := NewChatbotService(factory, sessionService, provider, quota, nopLogger{})
	return svc, sessionRepo, msgRepo
}

func TestSendChatRejectsWhenQuotaExhausted(t *testing.T) {
	svc, sessionRepo, _ := newChatbotFixture(&fakeQuota{allowed: false}, &fakeProvider{reply: "hi"})

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Empty(t, sessionRepo.sessions)
}

func TestSendChatPropagatesQuotaError(t *testing.T) {
	boom := errors.New("redis down")
	svc, _, _ := newChatbotFixture(&fakeQuota{err: boom}, &fakeProvider{reply: "hi"})

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, boom)
}

func TestSendChatHappyPath(t *testing.T) {
	provider := &fakeProvider{reply: "We have several bridge loans available."}
	svc, sessionRepo, msgRepo := newChatbotFixture(&fakeQuota{allowed: true, remaining: 19}, provider)
	userId := uuid.New()

	resp, err := svc.SendChat(context.Background(), userId, &dto.SendMessageRequest{Message: "any bridge loans?"})
	require.NoError(t, err)

	assert.Equal(t, provider.reply, resp.Reply)
	assert.Equal(t, 19, resp.Remaining)

	// One session, with user turn and assistant turn persisted.
	require.Len(t, sessionRepo.sessions, 1)
	assert.Equal(t, sessionRepo.sessions[0].Id, resp.SessionId)
	require.Len(t, msgRepo.messages, 2)
	assert.Equal(t, entity.MessageSenderUser, msgRepo.messages[0].Sender)
	assert.Equal(t, "any bridge loans?", msgRepo.messages[0].Content)
	assert.Equal(t, entity.MessageSenderAssistant, msgRepo.messages[1].Sender)
	assert.JSONEq(t, `{"provider":"fake"}`, string(msgRepo.messages[1].Metadata))

	// Prompt opens with the system prompt, then the user's turn.
	require.NotEmpty(t, provider.lastPrompt)
	assert.Equal(t, llm.RoleSystem, provider.lastPrompt[0].Role)
	assert.Equal(t, constant.ConciergeSystemPromptV1, provider.lastPrompt[0].Content)
	assert.Equal(t, llm.RoleUser, provider.lastPrompt[1].Role)

	// Session context records the provider.
	var sessCtx map[string]interface{}
	require.NoError(t, json.Unmarshal(sessionRepo.sessions[0].Context, &sessCtx))
	assert.Equal(t, "fake", sessCtx["provider"])
}

func TestSendChatReusesActiveSession(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, sessionRepo, _ := newChatbotFixture(&fakeQuota{allowed: true, remaining: 5}, provider)
	userId := uuid.New()

	first, err := svc.SendChat(context.Background(), userId, &dto.SendMessageRequest{Message: "one"})
	require.NoError(t, err)
	second, err := svc.SendChat(context.Background(), userId, &dto.SendMessageRequest{Message: "two"})
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestSendChatKeepsUserMessageOnLLMFailure(t *testing.T) {
	boom := errors.New("model unavailable")
	svc, _, msgRepo := newChatbotFixture(&fakeQuota{allowed: true}, &fakeProvider{err: boom})

	_, err := svc.SendChat(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, boom)

	require.Len(t, msgRepo.messages, 1)
	assert.Equal(t, entity.MessageSenderUser, msgRepo.messages[0].Sender)
}

func TestGetQuotaReportsRemaining(t *testing.T) {
	svc, _, _ := newChatbotFixture(&fakeQuota{allowed: true, remaining: 7}, &fakeProvider{reply: "ok"})

	resp, err := svc.GetQuota(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Remaining)
}

func TestGetQuotaPropagatesStoreError(t *testing.T) {
	boom := errors.New("redis down")
	svc, _, _ := newChatbotFixture(&fakeQuota{err: boom}, &fakeProvider{reply: "ok"})

	_, err := svc.GetQuota(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}

func TestGetActiveSessionCreatesForNewUser(t *testing.T) {
	svc, _, _ := newChatbotFixture(&fakeQuota{allowed: true}, &fakeProvider{reply: "ok"})

	resp, err := svc.GetActiveSession(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, string(entity.SessionStatusActive), resp.Status)
	assert.NotNil(t, resp.Messages)
	assert.Empty(t, resp.Messages)
}

func TestResetChatReportsArchivedCount(t *testing.T) {
	svc, _, _ := newChatbotFixture(&fakeQuota{allowed: true, remaining: 10}, &fakeProvider{reply: "ok"})
	userId := uuid.New()

	before, err := svc.SendChat(context.Background(), userId, &dto.SendMessageRequest{Message: "hi"})
	require.NoError(t, err)

	resp, err := svc.ResetChat(context.Background(), userId)
	require.NoError(t, err)

	assert.EqualValues(t, 1, resp.Archived)
	assert.NotEqual(t, before.SessionId, resp.Session.Id)
	assert.Empty(t, resp.Session.Messages)
}

func TestArchiveSessionChecksOwnership(t *testing.T) {
	svc, sessionRepo, _ := newChatbotFixture(&fakeQuota{allowed: true, remaining: 10}, &fakeProvider{reply: "ok"})
	owner := uuid.New()
	stranger := uuid.New()

	sent, err := svc.SendChat(context.Background(), owner, &dto.SendMessageRequest{Message: "hi"})
	require.NoError(t, err)

	// Someone else's session id is silently ignored.
	require.NoError(t, svc.ArchiveSession(context.Background(), stranger, sent.SessionId))
	assert.Equal(t, entity.SessionStatusActive, sessionRepo.sessions[0].Status)

	require.NoError(t, svc.ArchiveSession(context.Background(), owner, sent.SessionId))
	assert.Equal(t, entity.SessionStatusArchived, sessionRepo.sessions[0].Status)
}

func TestUpdateContextChecksOwnership(t *testing.T) {
	svc, sessionRepo, _ := newChatbotFixture(&fakeQuota{allowed: true, remaining: 10}, &fakeProvider{reply: "ok"})
	owner := uuid.New()

	sent, err := svc.SendChat(context.Background(), owner, &dto.SendMessageRequest{Message: "hi"})
	require.NoError(t, err)

	err = svc.UpdateContext(context.Background(), uuid.New(), sent.SessionId, &dto.UpdateContextRequest{
		Context: json.RawMessage(`{"loan_type":"bridge"}`),
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, svc.UpdateContext(context.Background(), owner, sent.SessionId, &dto.UpdateContextRequest{
		Context: json.RawMessage(`{"loan_type":"bridge"}`),
	}))
	assert.JSONEq(t, `{"loan_type":"bridge"}`, string(sessionRepo.sessions[0].Context))
}
