//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/kafka"
	"github.com/gearshare/service-rental/internal/repository"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	RedisAddr    string
	Cleanup      func()
}

// rentalStack holds the wired-up services under test.
type rentalStack struct {
	Users           *application.UserService
	Items           *application.ItemService
	Bookings        *application.BookingService
	CleanupProducer func()
}

// setupContainers starts PostgreSQL, Kafka and Redis testcontainers and
// returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start PostgreSQL container with log-based wait strategy.
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rental",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rental sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemModel{},
		&repository.CommentModel{},
		&repository.BookingModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, events.TopicBookingEvents)

	// Start Redis container.
	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: redisReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)
	redisAddr := net.JoinHostPort(redisHost, redisPort.Port())

	cleanup := func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		RedisAddr:    redisAddr,
		Cleanup:      cleanup,
	}
}

// setupRentalStack wires up the full service stack against the containers.
func setupRentalStack(t *testing.T, db *gorm.DB, brokers []string, cache application.SearchCache) *rentalStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	producer := kafka.NewProducer(brokers, logger)

	return &rentalStack{
		Users:           application.NewUserService(userRepo, logger),
		Items:           application.NewItemService(itemRepo, commentRepo, userRepo, bookingRepo, cache, logger),
		Bookings:        application.NewBookingService(bookingRepo, userRepo, itemRepo, producer, logger),
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// createUserAndItem seeds an owner with one listed item and returns both DTOs.
func createUserAndItem(t *testing.T, stack *rentalStack, name string, available bool) (*application.UserDTO, *application.ItemDTO) {
	t.Helper()
	ctx := context.Background()

	owner, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8]),
	})
	require.NoError(t, err, "failed to create user")

	item, err := stack.Items.CreateItem(ctx, owner.ID, application.CreateItemRequest{
		Name:        name + "'s drill",
		Description: "Cordless 18V drill",
		Available:   &available,
	})
	require.NoError(t, err, "failed to create item")
	return owner, item
}

// createUser seeds a plain user.
func createUser(t *testing.T, stack *rentalStack, name string) *application.UserDTO {
	t.Helper()
	u, err := stack.Users.CreateUser(context.Background(), application.CreateUserRequest{
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8]),
	})
	require.NoError(t, err, "failed to create user")
	return u
}

// seedBooking inserts a booking row directly, bypassing creation validation,
// so tests can place windows in the past.
func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	model := repository.BookingModel{
		ID:        uuid.New(),
		ItemID:    itemID,
		BookerID:  bookerID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}

// consumeOneEvent reads booking.events through the service's own consumer
// wrapper until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	consumer := kafka.NewConsumer(brokers, groupID, topic, logger)
	defer func() { _ = consumer.Close() }()

	found := make(chan kafka.CloudEvent, 1)
	go func() {
		_ = consumer.Consume(ctx, func(ctx context.Context, msg kafkago.Message) error {
			ce, err := kafka.ParseCloudEvent(msg.Value)
			if err != nil {
				return nil
			}
			if ce.Type == expectedType {
				select {
				case found <- ce:
				default:
				}
			}
			return nil
		})
	}()

	select {
	case ce := <-found:
		return ce
	case <-ctx.Done():
		t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
		return kafka.CloudEvent{}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
