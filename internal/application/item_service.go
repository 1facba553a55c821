package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gearshare/service-rental/internal/domain"
	bookingDomain "github.com/gearshare/service-rental/internal/domain/booking"
	itemDomain "github.com/gearshare/service-rental/internal/domain/item"
	userDomain "github.com/gearshare/service-rental/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchCache caches item search results keyed by query text.
type SearchCache interface {
	GetSearch(ctx context.Context, text string) ([]*itemDomain.Item, bool, error)
	SetSearch(ctx context.Context, text string, items []*itemDomain.Item) error
}

// CreateItemRequest holds the data needed to list a new item. Available is a
// pointer so an absent flag is distinguishable from false.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available"`
}

// UpdateItemRequest holds partial updates to an item.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest holds the text of a new comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the response representation of an item.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemDetailDTO is the item view with comments; when the requester owns the
// item it also carries the last finished and next upcoming booking.
type ItemDetailDTO struct {
	ItemDTO
	Comments    []CommentDTO `json:"comments"`
	LastBooking *BookingDTO  `json:"last_booking,omitempty"`
	NextBooking *BookingDTO  `json:"next_booking,omitempty"`
}

// ItemService implements use cases for the item catalog and its comments.
type ItemService struct {
	items    itemDomain.Repository
	comments itemDomain.CommentRepository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	cache    SearchCache
	logger   *zap.Logger
}

// NewItemService creates a new ItemService. cache may be nil; search then
// always hits the store.
func NewItemService(
	items itemDomain.Repository,
	comments itemDomain.CommentRepository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	cache SearchCache,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		users:    users,
		bookings: bookings,
		cache:    cache,
		logger:   logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, req.Available)
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update. Non-owners get not-found rather than
// forbidden so the item's existence is not revealed to them.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("item", itemID.String())
	}

	it.Update(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns the detailed item view for the given requester.
func (s *ItemService) GetItem(ctx context.Context, requesterID, itemID uuid.UUID) (*ItemDetailDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail := &ItemDetailDTO{
		ItemDTO:  toItemDTO(it),
		Comments: toCommentDTOs(comments),
	}

	// Booking visibility on the item view is an owner privilege.
	if it.IsOwnedBy(requesterID) {
		now := time.Now().UTC()
		last, err := s.bookings.FindLastForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.FindNextForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		if last != nil {
			dto := toBookingDTO(last)
			detail.LastBooking = &dto
		}
		if next != nil {
			dto := toBookingDTO(next)
			detail.NextBooking = &dto
		}
	}

	return detail, nil
}

// GetOwnerItems returns all items listed by the given owner.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toItemDTOs(items), nil
}

// SearchItems finds available items matching the text. Blank text yields an
// empty result without touching the store.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	if s.cache != nil {
		cached, hit, err := s.cache.GetSearch(ctx, text)
		if err != nil {
			s.logger.Warn("search cache read failed", zap.Error(err))
		} else if hit {
			return toItemDTOs(cached), nil
		}
	}

	items, err := s.items.SearchAvailable(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, text, items); err != nil {
			s.logger.Warn("search cache write failed", zap.Error(err))
		}
	}
	return toItemDTOs(items), nil
}

// DeleteItem removes an item listing.
func (s *ItemService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return s.items.Delete(ctx, itemID)
}

// AddComment records feedback on an item. Only a user whose booking on the
// item has already ended may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	hasBooked, err := s.bookings.HasFinishedBooking(ctx, itemID, authorID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !hasBooked {
		return nil, domain.NewForbiddenError(
			fmt.Sprintf("user %s has no finished booking on item %s", authorID, itemID))
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comment, err := itemDomain.NewComment(it.ID(), author.Name(), req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	result := toCommentDTO(comment)
	return &result, nil
}

// --- Helpers ---

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toItemDTOs(items []*itemDomain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
