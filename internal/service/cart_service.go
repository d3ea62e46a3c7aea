package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/cache"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/catalog"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/reconcile"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/repository"
	"golang.org/x/sync/singleflight"
)

// maxReplaceRetries bounds the re-read loop when two mutations for the same
// user race on the cart version.
const maxReplaceRetries = 3

// CartService owns every cart mutation: it reads the authoritative cart,
// runs the reconciler, commits with a version check, and keeps the cache
// coherent. Every mutating call returns the persisted cart so callers never
// trust a locally computed total.
type CartService struct {
	repo    repository.CartRepository
	cache   cache.CartCache
	catalog catalog.Lookup
	sfg     singleflight.Group // prevents cache stampede on GetCart
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache, catalog catalog.Lookup) *CartService {
	return &CartService{
		repo:    repo,
		cache:   cache,
		catalog: catalog,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cart cache get error: %v", err) // degrade to the store
		}

		cart, err := s.repo.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		go func() {
			cctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(cctx, userID, cart); err != nil {
				log.Printf("cart cache set error: %v", err)
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// CurrentCart reads the cart straight from the store, never the cache. The
// async cache fill in GetCart is not ordered against invalidation, so a fill
// carrying a pre-mutation cart can land after a later delete and serve stale
// until its TTL. Anything that acts on the cart (checkout snapshots an order
// from this read) must take the authoritative path.
func (s *CartService) CurrentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem validates the product against the live catalog, then merges the
// requested quantity into the cart. The price stored on the line is the
// catalog price at this moment, not whatever the line held before.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}
	if !p.Active {
		return nil, domain.ErrProductInactive
	}

	return s.mutate(ctx, userID, func(items []domain.CartItem) ([]domain.CartItem, float64, error) {
		return reconcile.Add(items, productID, qty, p.Price, p.Stock)
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID int64, qty int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(items []domain.CartItem) ([]domain.CartItem, float64, error) {
		return reconcile.UpdateQuantity(items, productID, qty)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int64) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(items []domain.CartItem) ([]domain.CartItem, float64, error) {
		next, total := reconcile.Remove(items, productID)
		return next, total, nil
	})
}

func (s *CartService) ClearCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func([]domain.CartItem) ([]domain.CartItem, float64, error) {
		next, total := reconcile.Clear()
		return next, total, nil
	})
}

// mutate runs one read-reconcile-replace cycle, retrying on version conflicts.
// The reconciler sees the freshly read items on every attempt, so a retry is a
// full re-evaluation, never a blind second write.
func (s *CartService) mutate(ctx context.Context, userID string, apply func([]domain.CartItem) ([]domain.CartItem, float64, error)) (*domain.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < maxReplaceRetries; attempt++ {
		cart, err := s.repo.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		items, total, err := apply(cart.Items)
		if err != nil {
			return nil, err
		}

		cart.Items = items
		cart.TotalAmount = total

		persisted, err := s.repo.Replace(ctx, cart)
		if err == nil {
			s.invalidateCache(userID)
			return persisted, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("cart update contention for user %s: %w", userID, lastErr)
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}
