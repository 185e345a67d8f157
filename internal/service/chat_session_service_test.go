package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/contract"
	"lending-concierge-be/internal/repository/specification"
	"lending-concierge-be/internal/repository/unitofwork"
)

// In-memory store standing in for the GORM layer. Sessions keep insertion
// order so "most recently created" is well defined even when timestamps tie.

type fakeChatMessageRepo struct {
	messages []*entity.ChatMessage

	// Rows created with a caller-supplied id; the store owns id generation.
	presetIds int
}

func (r *fakeChatMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	if message.Id != uuid.Nil {
		r.presetIds++
	} else {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	clone := *message
	r.messages = append(r.messages, &clone)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.messages, nil
}

func (r *fakeChatMessageRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

func (r *fakeChatMessageRepo) FindRecentBySession(_ context.Context, sessionId uuid.UUID, take int) ([]*entity.ChatMessage, error) {
	var all []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ChatSessionId == sessionId {
			all = append(all, m)
		}
	}
	// Newest first, as the SQL implementation returns them.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if len(all) > take {
		all = all[:take]
	}
	return all, nil
}

func (r *fakeChatMessageRepo) bySession(sessionId uuid.UUID, limit int) []*entity.ChatMessage {
	var all []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ChatSessionId == sessionId {
			all = append(all, m)
		}
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

type fakeChatSessionRepo struct {
	sessions []*entity.ChatSession
	msgRepo  *fakeChatMessageRepo

	presetIds int
	createErr error
}

func (r *fakeChatSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	if r.createErr != nil {
		return r.createErr
	}
	if session.Id != uuid.Nil {
		r.presetIds++
	} else {
		session.Id = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	clone := *session
	r.sessions = append(r.sessions, &clone)
	return nil
}

func (r *fakeChatSessionRepo) Update(_ context.Context, session *entity.ChatSession) error {
	for i, s := range r.sessions {
		if s.Id == session.Id {
			clone := *session
			r.sessions[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.ChatSession, error) {
	return nil, nil
}

func (r *fakeChatSessionRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.ChatSession, error) {
	return r.sessions, nil
}

func (r *fakeChatSessionRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

func (r *fakeChatSessionRepo) FindByIdForUser(_ context.Context, id, userId uuid.UUID) (*entity.ChatSession, error) {
	for _, s := range r.sessions {
		if s.Id == id && s.UserId == userId {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) latestActive(userId uuid.UUID) *entity.ChatSession {
	for i := len(r.sessions) - 1; i >= 0; i-- {
		if r.sessions[i].UserId == userId && r.sessions[i].Status == entity.SessionStatusActive {
			return r.sessions[i]
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) FindLatestActiveByUser(_ context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	if s := r.latestActive(userId); s != nil {
		clone := *s
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) FindLatestActiveByUserWithMessages(_ context.Context, userId uuid.UUID, messageLimit int) (*entity.ChatSession, error) {
	s := r.latestActive(userId)
	if s == nil {
		return nil, nil
	}
	clone := *s
	clone.Messages = r.msgRepo.bySession(s.Id, messageLimit)
	return &clone, nil
}

func (r *fakeChatSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.SessionStatus) error {
	for _, s := range r.sessions {
		if s.Id == id {
			s.Status = status
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) ArchiveAllActiveByUser(_ context.Context, userId uuid.UUID) (int64, error) {
	var archived int64
	for _, s := range r.sessions {
		if s.UserId == userId && s.Status == entity.SessionStatusActive {
			s.Status = entity.SessionStatusArchived
			archived++
		}
	}
	return archived, nil
}

func (r *fakeChatSessionRepo) UpdateContext(_ context.Context, id uuid.UUID, context json.RawMessage) error {
	for _, s := range r.sessions {
		if s.Id == id {
			s.Context = context
		}
	}
	return nil
}

type fakeUnitOfWork struct {
	sessionRepo *fakeChatSessionRepo
	messageRepo *fakeChatMessageRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository           { return nil }
func (u *fakeUnitOfWork) BrokerRepository() contract.BrokerRepository       { return nil }
func (u *fakeUnitOfWork) LoanCaseRepository() contract.LoanCaseRepository   { return nil }
func (u *fakeUnitOfWork) CaseImageRepository() contract.CaseImageRepository { return nil }
func (u *fakeUnitOfWork) InquiryRepository() contract.InquiryRepository     { return nil }

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessionRepo
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messageRepo
}

type fakeRepoFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepoFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

func newFakeFactory() (*fakeRepoFactory, *fakeChatSessionRepo, *fakeChatMessageRepo) {
	msgRepo := &fakeChatMessageRepo{}
	sessionRepo := &fakeChatSessionRepo{msgRepo: msgRepo}
	return &fakeRepoFactory{uow: &fakeUnitOfWork{sessionRepo: sessionRepo, messageRepo: msgRepo}}, sessionRepo, msgRepo
}

func TestGetOrCreateActiveSessionCreatesWhenNoneExists(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, entity.SessionStatusActive, session.Status)
	assert.Equal(t, userId, session.UserId)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestGetOrCreateActiveSessionIsIdempotent(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	first, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)
	second, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestGetOrCreateActiveSessionReactivatesByExplicitId(t *testing.T) {
	factory, _, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveSession(context.Background(), session.Id))

	revived, err := svc.GetOrCreateActiveSession(context.Background(), userId, &session.Id)
	require.NoError(t, err)

	assert.Equal(t, session.Id, revived.Id)
	assert.Equal(t, entity.SessionStatusActive, revived.Status)
}

func TestGetOrCreateActiveSessionIgnoresForeignId(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()
	unknownId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, &unknownId)
	require.NoError(t, err)

	assert.NotEqual(t, unknownId, session.Id)
	assert.Equal(t, entity.SessionStatusActive, session.Status)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestArchiveSessionIsIdempotent(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveSession(context.Background(), session.Id))
	require.NoError(t, svc.ArchiveSession(context.Background(), session.Id))
	assert.Equal(t, entity.SessionStatusArchived, sessionRepo.sessions[0].Status)

	// Nonexistent id is a no-op, not an error.
	require.NoError(t, svc.ArchiveSession(context.Background(), uuid.New()))
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestAppendAndFetchRecentMessages(t *testing.T) {
	factory, _, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	sessionId := uuid.New()

	contents := []string{"m1", "m2", "m3", "m4", "m5", "m6"}
	for i, content := range contents {
		sender := entity.MessageSenderUser
		if i%2 == 1 {
			sender = entity.MessageSenderAssistant
		}
		msg, err := svc.AppendMessage(context.Background(), sessionId, sender, content, nil)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, msg.Id)
		assert.Equal(t, sessionId, msg.ChatSessionId)
	}

	// Window smaller than history: newest N, chronological.
	recent, err := svc.FetchRecentMessages(context.Background(), sessionId, 4)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, []string{"m3", "m4", "m5", "m6"}, contentsOf(recent))

	// Window larger than history: everything, chronological.
	all, err := svc.FetchRecentMessages(context.Background(), sessionId, 100)
	require.NoError(t, err)
	assert.Equal(t, contents, contentsOf(all))
}

func TestFetchRecentMessagesDefaultsWindow(t *testing.T) {
	factory, _, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	sessionId := uuid.New()

	for i := 0; i < 12; i++ {
		_, err := svc.AppendMessage(context.Background(), sessionId, entity.MessageSenderUser, "msg", nil)
		require.NoError(t, err)
	}

	recent, err := svc.FetchRecentMessages(context.Background(), sessionId, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 8)
}

func TestFetchActiveSessionWithMessagesCreatesFreshSession(t *testing.T) {
	factory, _, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.FetchActiveSessionWithMessages(context.Background(), userId)
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, entity.SessionStatusActive, session.Status)
	assert.NotNil(t, session.Messages)
	assert.Empty(t, session.Messages)
}

func TestFetchActiveSessionWithMessagesEagerLoads(t *testing.T) {
	factory, _, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)

	for _, content := range []string{"hello", "hi there", "rates?"} {
		_, err := svc.AppendMessage(context.Background(), session.Id, entity.MessageSenderUser, content, nil)
		require.NoError(t, err)
	}

	loaded, err := svc.FetchActiveSessionWithMessages(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, session.Id, loaded.Id)
	assert.Equal(t, []string{"hello", "hi there", "rates?"}, contentsOf(loaded.Messages))
}

func TestResetSessionArchivesAllActiveSessions(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	// Two ACTIVE sessions simulate the duplicate-session race.
	first, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)
	second := &entity.ChatSession{Id: uuid.New(), UserId: userId, Status: entity.SessionStatusActive}
	require.NoError(t, sessionRepo.Create(context.Background(), second))

	fresh, archived, err := svc.ResetSession(context.Background(), userId)
	require.NoError(t, err)

	assert.EqualValues(t, 2, archived)
	assert.NotEqual(t, first.Id, fresh.Id)
	assert.NotEqual(t, second.Id, fresh.Id)
	assert.Equal(t, entity.SessionStatusActive, fresh.Status)

	for _, s := range sessionRepo.sessions {
		if s.Id != fresh.Id {
			assert.Equal(t, entity.SessionStatusArchived, s.Status)
		}
	}
}

func TestUpdateSessionContextReplacesWholesale(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.AppendMessage(context.Background(), session.Id, entity.MessageSenderUser, "msg", nil)
		require.NoError(t, err)
	}

	require.NoError(t, svc.UpdateSessionContext(context.Background(), session.Id, json.RawMessage(`{"step":1}`)))
	require.NoError(t, svc.UpdateSessionContext(context.Background(), session.Id, json.RawMessage(`{"step":2}`)))

	assert.JSONEq(t, `{"step":2}`, string(sessionRepo.sessions[0].Context))

	loaded, err := svc.FetchActiveSessionWithMessages(context.Background(), userId)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 3)
}

func TestStoreAssignsIdsAndTimestamps(t *testing.T) {
	factory, sessionRepo, msgRepo := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	session, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.Id)
	assert.False(t, session.CreatedAt.IsZero())

	msg, err := svc.AppendMessage(context.Background(), session.Id, entity.MessageSenderUser, "hello", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.Id)
	assert.False(t, msg.CreatedAt.IsZero())

	// The service must hand the store zero-valued id/created_at so the
	// column defaults apply.
	assert.Zero(t, sessionRepo.presetIds)
	assert.Zero(t, msgRepo.presetIds)
}

func TestStorageFaultsPropagate(t *testing.T) {
	factory, sessionRepo, _ := newFakeFactory()
	svc := NewChatSessionService(factory)
	userId := uuid.New()

	boom := errors.New("connection refused")
	sessionRepo.createErr = boom

	_, err := svc.GetOrCreateActiveSession(context.Background(), userId, nil)
	assert.ErrorIs(t, err, boom)

	_, _, err = svc.ResetSession(context.Background(), userId)
	assert.ErrorIs(t, err, boom)
}

func contentsOf(messages []*entity.ChatMessage) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.Content)
	}
	return out
}
