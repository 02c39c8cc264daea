package reviews

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"streamhaven/internal/storage"
	"streamhaven/models"
)

var (
	ErrStoreRequired = errors.New("reviews: storage is required")
	ErrValidation    = errors.New("reviews: invalid submission")
	ErrNotFound      = errors.New("reviews: review not found")
)

// defaultAuthorLabel is used when a submission carries no author.
const defaultAuthorLabel = "Anonymous User"

// Input is a review submission.
type Input struct {
	Kind        models.Kind `json:"kind" validate:"required,oneof=movie series"`
	ItemID      int64       `json:"itemId" validate:"required,gt=0"`
	Rating      int         `json:"rating" validate:"required,min=1,max=5"`
	Text        string      `json:"text" validate:"required"`
	AuthorLabel string      `json:"authorLabel"`
}

// Service keeps reviews in two places: a shared per-item list under
// "reviews-<kind>-<id>" and the caller's own last review under
// "my-review-<kind>-<id>" for pre-filling the edit form.
type Service struct {
	mu       sync.Mutex
	store    storage.Store
	validate *validator.Validate
}

// NewService builds the review service over the given store.
func NewService(store storage.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store, validate: validator.New()}, nil
}

func sharedKey(kind models.Kind, itemID int64) string {
	return fmt.Sprintf("reviews-%s-%d", kind, itemID)
}

func personalKey(kind models.Kind, itemID int64) string {
	return fmt.Sprintf("my-review-%s-%d", kind, itemID)
}

// Submit validates the input, prepends the review to the shared per-item
// list, and persists the caller's own record separately. Validation failures
// never touch persisted state.
func (s *Service) Submit(ctx context.Context, input Input) (models.Review, error) {
	input.Text = strings.TrimSpace(input.Text)
	input.AuthorLabel = strings.TrimSpace(input.AuthorLabel)
	if err := s.validate.Struct(input); err != nil {
		return models.Review{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.AuthorLabel == "" {
		input.AuthorLabel = defaultAuthorLabel
	}

	review := models.Review{
		ID:          uuid.NewString(),
		Kind:        input.Kind,
		ItemID:      input.ItemID,
		Rating:      input.Rating,
		Text:        input.Text,
		AuthorLabel: input.AuthorLabel,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var shared []models.Review
	storage.ReadJSON(ctx, s.store, sharedKey(input.Kind, input.ItemID), &shared)
	shared = append([]models.Review{review}, shared...)
	storage.WriteJSON(ctx, s.store, sharedKey(input.Kind, input.ItemID), shared)

	mine := models.MyReview{Rating: input.Rating, Text: input.Text}
	storage.WriteJSON(ctx, s.store, personalKey(input.Kind, input.ItemID), mine)

	return review, nil
}

// List returns the shared reviews for an item, newest first.
func (s *Service) List(ctx context.Context, kind models.Kind, itemID int64) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shared []models.Review
	storage.ReadJSON(ctx, s.store, sharedKey(kind, itemID), &shared)
	sort.SliceStable(shared, func(i, j int) bool {
		return shared[i].CreatedAt.After(shared[j].CreatedAt)
	})
	return shared
}

// MyReview returns the caller's last review for an item, if any.
func (s *Service) MyReview(ctx context.Context, kind models.Kind, itemID int64) (models.MyReview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mine models.MyReview
	found := storage.ReadJSON(ctx, s.store, personalKey(kind, itemID), &mine)
	return mine, found
}

// MarkHelpful increments the helpful count of one review in the shared list.
func (s *Service) MarkHelpful(ctx context.Context, kind models.Kind, itemID int64, reviewID string) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shared []models.Review
	storage.ReadJSON(ctx, s.store, sharedKey(kind, itemID), &shared)

	for i := range shared {
		if shared[i].ID == reviewID {
			shared[i].HelpfulCount++
			storage.WriteJSON(ctx, s.store, sharedKey(kind, itemID), shared)
			return shared[i], nil
		}
	}
	return models.Review{}, ErrNotFound
}

// Summary aggregates the shared list: count, average rating, and the
// per-star distribution.
func (s *Service) Summary(ctx context.Context, kind models.Kind, itemID int64) models.ReviewSummary {
	reviews := s.List(ctx, kind, itemID)

	summary := models.ReviewSummary{
		Count:        len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		summary.Distribution[r.Rating]++
	}
	summary.Average = float64(sum) / float64(len(reviews))
	return summary
}
