package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/unitofwork"
	"lending-concierge-be/internal/service"
	"lending-concierge-be/pkg/database"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.BrokerRepository())
	assert.NotNil(t, uow.LoanCaseRepository())
	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Loan Case Repository", func(t *testing.T) {
		count, err := uow.LoanCaseRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("LoanCase count: %d", count)
	})

	t.Run("Check Chat Session Lifecycle", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     entity.UserRoleBorrower,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		sessionService := service.NewChatSessionService(uowFactory)

		session, err := sessionService.GetOrCreateActiveSession(ctx, user.Id, nil)
		assert.NoError(t, err)
		assert.Equal(t, entity.SessionStatusActive, session.Status)

		again, err := sessionService.GetOrCreateActiveSession(ctx, user.Id, nil)
		assert.NoError(t, err)
		assert.Equal(t, session.Id, again.Id)

		_, err = sessionService.AppendMessage(ctx, session.Id, entity.MessageSenderUser, "integration hello", nil)
		assert.NoError(t, err)

		messages, err := sessionService.FetchRecentMessages(ctx, session.Id, 8)
		assert.NoError(t, err)
		assert.NotEmpty(t, messages)

		fresh, archived, err := sessionService.ResetSession(ctx, user.Id)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, archived, int64(1))
		assert.NotEqual(t, session.Id, fresh.Id)

		t.Log("Successfully exercised session lifecycle against live DB")
	})
}
