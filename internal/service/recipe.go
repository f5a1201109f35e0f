package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/storage"
)

// DefaultStorageKey is the key the recipe collection is persisted under.
const DefaultStorageKey = "recipes"

var (
	// ErrRecipeNotFound is returned by GetByID when no recipe has the id.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrPersistence wraps every failure of the underlying storage medium.
	ErrPersistence = errors.New("recipe storage failure")
	// ErrReadFailed is an ErrPersistence raised while loading the collection.
	ErrReadFailed = fmt.Errorf("%w: read", ErrPersistence)
	// ErrWriteFailed is an ErrPersistence raised while saving the collection.
	ErrWriteFailed = fmt.Errorf("%w: write", ErrPersistence)
)

// RecipeStore owns the persisted recipe collection. Every operation reads
// the whole collection and every mutation writes the whole collection back.
//
// There is no locking across processes: two writers interleaving
// read-modify-write cycles on the same key will lose the earlier write.
type RecipeStore struct {
	kv    storage.KV
	key   string
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// Option customises a RecipeStore.
type Option func(*RecipeStore)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *RecipeStore) { s.now = now }
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *RecipeStore) { s.newID = newID }
}

// NewRecipeStore returns a store persisting the collection under key in kv.
func NewRecipeStore(kv storage.KV, key string, log *logger.Logger, opts ...Option) *RecipeStore {
	if key == "" {
		key = DefaultStorageKey
	}
	s := &RecipeStore{
		kv:    kv,
		key:   key,
		log:   log.With("component", "RecipeStore", "key", key),
		now:   func() time.Time { return time.Now() },
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every recipe in stored order. A missing or malformed
// collection reads as empty.
func (s *RecipeStore) List(ctx context.Context) ([]model.Recipe, error) {
	return s.load(ctx)
}

// GetByID returns the recipe with id or ErrRecipeNotFound.
func (s *RecipeStore) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, ErrRecipeNotFound
}

// Create stamps a new id and timestamps onto in, appends it to the
// collection and persists the result.
func (s *RecipeStore) Create(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	for containsID(recipes, id) {
		s.log.Warn("Generated id already in use, regenerating", "id", id)
		id = s.newID()
	}

	now := model.NewTimestamp(s.now())
	in = in.Normalize()
	recipe := model.Recipe{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Category:     in.Category,
		Difficulty:   in.Difficulty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.save(ctx, append(recipes, recipe)); err != nil {
		return nil, err
	}

	s.log.Info("Created recipe", "id", recipe.ID, "title", recipe.Title)
	return &recipe, nil
}

// Delete removes the recipe with id. It reports false, without writing,
// when no recipe matches.
func (s *RecipeStore) Delete(ctx context.Context, id string) (bool, error) {
	recipes, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recipes) {
		return false, nil
	}

	if err := s.save(ctx, kept); err != nil {
		return false, err
	}

	s.log.Info("Deleted recipe", "id", id)
	return true, nil
}

func (s *RecipeStore) load(ctx context.Context) ([]model.Recipe, error) {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []model.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	recipes, dropped, err := decodeCollection(data)
	if err != nil {
		s.log.Warn("Stored recipe collection is malformed, treating as empty", "error", err)
		return []model.Recipe{}, nil
	}
	if dropped > 0 {
		s.log.Warn("Skipped unreadable recipe records", "dropped", dropped)
	}
	return recipes, nil
}

func (s *RecipeStore) save(ctx context.Context, recipes []model.Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("%w: encode collection: %w", ErrWriteFailed, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.log.Error("Failed to persist recipe collection", "error", err, "bytes", len(data))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// decodeCollection parses a stored collection, dropping elements that are
// not recipe objects, lack an id, or repeat an earlier id. Surviving
// records are normalized the same way Create normalizes its input.
func decodeCollection(data []byte) ([]model.Recipe, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	recipes := make([]model.Recipe, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	dropped := 0
	for _, elem := range raw {
		var r model.Recipe
		if err := json.Unmarshal(elem, &r); err != nil || strings.TrimSpace(r.ID) == "" {
			dropped++
			continue
		}
		if _, dup := seen[r.ID]; dup {
			dropped++
			continue
		}
		seen[r.ID] = struct{}{}

		in := r.Input().Normalize()
		r.PrepTime, r.CookTime, r.Servings = in.PrepTime, in.CookTime, in.Servings
		r.Category, r.Difficulty = in.Category, in.Difficulty
		recipes = append(recipes, r)
	}
	return recipes, dropped, nil
}

func containsID(recipes []model.Recipe, id string) bool {
	for _, r := range recipes {
		if r.ID == id {
			return true
		}
	}
	return false
}
