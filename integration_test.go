//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/cache"
	"github.com/gearshare/service-rental/internal/config"
	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gearshare/service-rental/internal/events"
	"github.com/gearshare/service-rental/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookingApprovalFlow drives a booking from creation through the owner's
// approval against real PostgreSQL and Kafka, and verifies both lifecycle
// events land on booking.events.
func TestBookingApprovalFlow(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers, nil)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner, item := createUserAndItem(t, stack, "owner", true)
	booker := createUser(t, stack, "booker")

	start := time.Now().UTC().Add(24 * time.Hour)
	created, err := stack.Bookings.CreateBooking(ctx, booker.ID, application.CreateBookingRequest{
		ItemID: item.ID,
		Start:  start,
		End:    start.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	var model repository.BookingModel
	require.NoError(t, infra.DB.Where("id = ?", created.ID).First(&model).Error)
	assert.Equal(t, "WAITING", model.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingCreated, 30*time.Second)
	var createdEvt events.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&createdEvt))
	assert.Equal(t, created.ID, createdEvt.BookingID)
	assert.Equal(t, owner.ID, createdEvt.OwnerID)

	decided, err := stack.Bookings.DecideBooking(ctx, owner.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", decided.Status)

	require.NoError(t, infra.DB.Where("id = ?", created.ID).First(&model).Error)
	assert.Equal(t, "APPROVED", model.Status)

	// A second decision must lose: the stored status already left WAITING.
	_, err = stack.Bookings.DecideBooking(ctx, owner.ID, created.ID, false)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	require.NoError(t, infra.DB.Where("id = ?", created.ID).First(&model).Error)
	assert.Equal(t, "APPROVED", model.Status)

	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingApproved, 30*time.Second)
	var decidedEvt events.BookingDecidedEvent
	require.NoError(t, ce.ParseData(&decidedEvt))
	assert.Equal(t, created.ID, decidedEvt.BookingID)
	assert.True(t, decidedEvt.Approved)
}

// TestBookingFilterViews seeds past, current and future windows and checks the
// time-relative list views for both the booker and the item owner.
func TestBookingFilterViews(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers, nil)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner, item := createUserAndItem(t, stack, "owner", true)
	booker := createUser(t, stack, "booker")

	now := time.Now().UTC()
	pastID := seedBooking(t, infra.DB, item.ID, booker.ID,
		now.Add(-96*time.Hour), now.Add(-48*time.Hour), "APPROVED")
	currentID := seedBooking(t, infra.DB, item.ID, booker.ID,
		now.Add(-24*time.Hour), now.Add(24*time.Hour), "APPROVED")
	futureID := seedBooking(t, infra.DB, item.ID, booker.ID,
		now.Add(48*time.Hour), now.Add(96*time.Hour), "WAITING")

	t.Run("booker views", func(t *testing.T) {
		single := func(dtos []application.BookingDTO, err error) application.BookingDTO {
			require.NoError(t, err)
			require.Len(t, dtos, 1)
			return dtos[0]
		}

		all, err := stack.Bookings.ListBookingsForBooker(ctx, booker.ID, "ALL")
		require.NoError(t, err)
		assert.Len(t, all, 3)
		// start descending
		assert.Equal(t, futureID, all[0].ID)
		assert.Equal(t, pastID, all[2].ID)

		assert.Equal(t, pastID, single(stack.Bookings.ListBookingsForBooker(ctx, booker.ID, "PAST")).ID)
		assert.Equal(t, currentID, single(stack.Bookings.ListBookingsForBooker(ctx, booker.ID, "CURRENT")).ID)
		assert.Equal(t, futureID, single(stack.Bookings.ListBookingsForBooker(ctx, booker.ID, "FUTURE")).ID)
		assert.Equal(t, futureID, single(stack.Bookings.ListBookingsForBooker(ctx, booker.ID, "waiting")).ID)
	})

	t.Run("owner views join through items", func(t *testing.T) {
		all, err := stack.Bookings.ListBookingsForOwner(ctx, owner.ID, "ALL")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		current, err := stack.Bookings.ListBookingsForOwner(ctx, owner.ID, "CURRENT")
		require.NoError(t, err)
		require.Len(t, current, 1)
		assert.Equal(t, currentID, current[0].ID)

		// The owner has no bookings of their own.
		own, err := stack.Bookings.ListBookingsForBooker(ctx, owner.ID, "ALL")
		require.NoError(t, err)
		assert.Empty(t, own)
	})

	t.Run("unknown state rejected", func(t *testing.T) {
		_, err := stack.Bookings.ListBookingsForBooker(ctx, booker.ID, "banana")
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})
}

// TestCommentEligibility verifies comments are only accepted from users whose
// booking on the item has already ended, and that the owner item view carries
// last/next booking info.
func TestCommentEligibility(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers, nil)
	defer stack.CleanupProducer()

	ctx := context.Background()
	owner, item := createUserAndItem(t, stack, "owner", true)
	renter := createUser(t, stack, "renter")
	stranger := createUser(t, stack, "stranger")

	now := time.Now().UTC()
	lastID := seedBooking(t, infra.DB, item.ID, renter.ID,
		now.Add(-96*time.Hour), now.Add(-48*time.Hour), "APPROVED")
	nextID := seedBooking(t, infra.DB, item.ID, renter.ID,
		now.Add(48*time.Hour), now.Add(96*time.Hour), "APPROVED")

	comment, err := stack.Items.AddComment(ctx, renter.ID, item.ID, application.CreateCommentRequest{
		Text: "Solid drill, battery lasted the whole weekend",
	})
	require.NoError(t, err)
	assert.Equal(t, "renter", comment.AuthorName)

	_, err = stack.Items.AddComment(ctx, stranger.ID, item.ID, application.CreateCommentRequest{Text: "Nice"})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	t.Run("owner item view", func(t *testing.T) {
		detail, err := stack.Items.GetItem(ctx, owner.ID, item.ID)
		require.NoError(t, err)
		require.Len(t, detail.Comments, 1)
		require.NotNil(t, detail.LastBooking)
		require.NotNil(t, detail.NextBooking)
		assert.Equal(t, lastID, detail.LastBooking.ID)
		assert.Equal(t, nextID, detail.NextBooking.ID)
	})

	t.Run("renter item view hides bookings", func(t *testing.T) {
		detail, err := stack.Items.GetItem(ctx, renter.ID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.LastBooking)
		assert.Nil(t, detail.NextBooking)
	})
}

// TestSearchCaching verifies the Redis-backed search cache serves repeated
// queries without touching the store.
func TestSearchCaching(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	searchCache := cache.NewRedisCache(config.RedisConfig{
		Addr:          infra.RedisAddr,
		SearchTTLSecs: 60,
	})
	defer func() { _ = searchCache.Close() }()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers, searchCache)
	defer stack.CleanupProducer()

	ctx := context.Background()
	_, item := createUserAndItem(t, stack, "owner", true)

	first, err := stack.Items.SearchItems(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, item.ID, first[0].ID)

	// Remove the row; a cached result must still be served within the TTL.
	require.NoError(t, infra.DB.Where("id = ?", item.ID).Delete(&repository.ItemModel{}).Error)

	second, err := stack.Items.SearchItems(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, item.ID, second[0].ID)
}
