package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the per-owner shopping cart.
type Repository interface {
	Load(ctx context.Context, owner string) ([]models.CartItem, error)
	Add(ctx context.Context, owner string, product *models.Product) ([]models.CartItem, error)
	SetQuantity(ctx context.Context, owner string, itemID uuid.UUID, quantity int) ([]models.CartItem, error)
	Remove(ctx context.Context, owner string, itemID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, owner string) error
	Subscribe(ctx context.Context, owner string) <-chan Event
}

type Options struct {
	KeyPrefix    string
	PollInterval time.Duration
}

// Store keeps each owner's cart as one JSON array under "<prefix>:<owner>".
type Store struct {
	kv       KV
	notifier *Notifier
	opts     Options

	// serialises read-modify-write cycles within this process
	mu sync.Mutex
}

func NewStore(kv KV, notifier *Notifier, opts Options) *Store {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "cart"
	}

	return &Store{kv: kv, notifier: notifier, opts: opts}
}

func (s *Store) key(owner string) string {
	return s.opts.KeyPrefix + ":" + owner
}

// Load returns the owner's cart. A missing or unparseable entry is an empty cart.
func (s *Store) Load(ctx context.Context, owner string) ([]models.CartItem, error) {
	raw, ok, err := s.kv.Get(ctx, s.key(owner))
	if err != nil {
		return nil, err
	}

	if !ok {
		return []models.CartItem{}, nil
	}

	items, err := Decode(raw)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Discarding unparseable cart entry",
			slog.String("owner", owner), slog.Any("error", err))

		return []models.CartItem{}, nil
	}

	return items, nil
}

// Add appends the product with quantity 1, or increments it if already present.
func (s *Store) Add(ctx context.Context, owner string, product *models.Product) ([]models.CartItem, error) {
	return s.mutate(ctx, owner, func(items []models.CartItem) ([]models.CartItem, bool) {
		for i := range items {
			if items[i].ID == product.ID {
				items[i].Quantity++

				return items, true
			}
		}

		return append(items, models.CartItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			ImageURL: product.ImageURL,
			Quantity: 1,
		}), true
	})
}

// SetQuantity is a no-op for quantities below 1.
func (s *Store) SetQuantity(ctx context.Context, owner string, itemID uuid.UUID, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		return s.Load(ctx, owner)
	}

	return s.mutate(ctx, owner, func(items []models.CartItem) ([]models.CartItem, bool) {
		for i := range items {
			if items[i].ID == itemID {
				items[i].Quantity = quantity

				return items, true
			}
		}

		return items, false
	})
}

func (s *Store) Remove(ctx context.Context, owner string, itemID uuid.UUID) ([]models.CartItem, error) {
	return s.mutate(ctx, owner, func(items []models.CartItem) ([]models.CartItem, bool) {
		for i := range items {
			if items[i].ID == itemID {
				return append(items[:i], items[i+1:]...), true
			}
		}

		return items, false
	})
}

func (s *Store) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Del(ctx, s.key(owner)); err != nil {
		return err
	}

	s.notifier.Publish(Event{Owner: owner})

	return nil
}

// Subscribe merges in-process notifications with polling of the entry. The
// channel is closed when ctx is done.
func (s *Store) Subscribe(ctx context.Context, owner string) <-chan Event {
	out := make(chan Event, 1)
	events, unsubscribe := s.notifier.Subscribe(owner)

	var polled <-chan Event
	if s.opts.PollInterval > 0 {
		polled = NewWatcher(s.kv, s.opts.PollInterval, middleware.LoggerFromContext(ctx)).Watch(ctx, s.key(owner), owner)
	}

	go func() {
		defer close(out)
		defer unsubscribe()

		forward := func(ev Event) {
			select {
			case out <- ev:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				forward(ev)
			case ev, ok := <-polled:
				if !ok {
					polled = nil

					continue
				}

				forward(ev)
			}
		}
	}()

	return out
}

// mutate persists the result of fn and publishes a change when fn reports one.
func (s *Store) mutate(ctx context.Context, owner string, fn func([]models.CartItem) ([]models.CartItem, bool)) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	items, changed := fn(items)
	if !changed {
		return items, nil
	}

	raw, err := Encode(items)
	if err != nil {
		return nil, err
	}

	if err := s.kv.Set(ctx, s.key(owner), raw); err != nil {
		return nil, err
	}

	s.notifier.Publish(Event{Owner: owner})

	return items, nil
}

func Encode(items []models.CartItem) (string, error) {
	if items == nil {
		items = []models.CartItem{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding cart: %w", err)
	}

	return string(b), nil
}

func Decode(raw string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}

	if items == nil {
		items = []models.CartItem{}
	}

	return items, nil
}

// CalculateTotal sums price times quantity, formatted with two decimals.
func CalculateTotal(items []models.CartItem) string {
	return Total(items).StringFixed(2)
}

func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}
