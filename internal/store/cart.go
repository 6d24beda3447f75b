package store

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ladle/internal/recipe"
)

// CartStore is the optimistic shopping cart. Mutations update the
// in-memory list and the durable snapshot synchronously; the remote
// accounting endpoint is told about the net quantity change in a
// fire-and-forget call whose failure never reverts local state.
type CartStore struct {
	notifier

	mu    sync.Mutex
	items []recipe.CartItem

	cache  Snapshotter
	syncer CartSyncer
	log    zerolog.Logger
	ctx    context.Context

	syncing atomic.Int32
}

// CartOptions configure a CartStore.
type CartOptions struct {
	Context context.Context
	Cache   Snapshotter
	Syncer  CartSyncer
	Logger  zerolog.Logger
}

// NewCart builds a CartStore and restores the persisted snapshot.
// A missing or corrupt snapshot starts the cart empty; it never fails
// construction.
func NewCart(opts CartOptions) *CartStore {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	s := &CartStore{
		cache:  opts.Cache,
		syncer: opts.Syncer,
		log:    opts.Logger,
		ctx:    ctx,
	}

	var saved []recipe.CartItem
	found, err := s.cache.Load(cartCacheKey, &saved)
	if err != nil {
		s.log.Warn().Err(err).Msg("cart snapshot unreadable, starting empty")
	} else if found {
		s.items = saved
	}
	return s
}

// Upsert adds qty of a recipe to the cart. An existing entry gains the
// quantity and merges new ingredients by id, leaving ingredients it
// already has untouched; otherwise a new entry is appended. qty below 1
// counts as 1.
func (s *CartStore) Upsert(item recipe.CartItem, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	if existing := s.findLocked(item.DocumentID); existing != nil {
		existing.Quantity += qty
		for _, ing := range item.Ingredients {
			if !hasIngredient(existing.Ingredients, ing.ID) {
				existing.Ingredients = append(existing.Ingredients, ing)
			}
		}
	} else {
		entry := item
		entry.Quantity = qty
		entry.Ingredients = item.CloneIngredients()
		s.items = append(s.items, entry)
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()

	s.syncAdd(qty)
}

// Remove deletes an entry. Removing an absent id is a no-op.
func (s *CartStore) Remove(documentID string) {
	s.mu.Lock()
	idx := s.indexLocked(documentID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	qty := s.items[idx].Quantity
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()

	s.syncRemove(qty)
}

// SetQuantity sets an entry's quantity. A quantity of zero or less
// removes the entry. The remote delta is computed against the quantity
// at the moment of the call, so rapid sequential changes report deltas
// that sum correctly no matter how the remote calls resolve.
func (s *CartStore) SetQuantity(documentID string, quantity int) {
	s.mu.Lock()
	item := s.findLocked(documentID)
	if item == nil {
		s.mu.Unlock()
		return
	}

	prev := item.Quantity
	if quantity <= 0 {
		idx := s.indexLocked(documentID)
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.persistLocked()
		s.mu.Unlock()
		s.notify()
		s.syncRemove(prev)
		return
	}

	item.Quantity = quantity
	s.persistLocked()
	s.mu.Unlock()
	s.notify()

	switch diff := quantity - prev; {
	case diff > 0:
		s.syncAdd(diff)
	case diff < 0:
		s.syncRemove(-diff)
	}
}

// Clear empties the cart and reports the whole quantity as removed in a
// single remote call.
func (s *CartStore) Clear() {
	s.mu.Lock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()

	if total > 0 {
		s.syncRemove(total)
	}
}

// AddIngredient appends a user-created ingredient to an entry. Blank
// names are ignored. The ingredient exists only locally; the remote
// service never learns about it.
func (s *CartStore) AddIngredient(documentID, name, amount string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	item := s.findLocked(documentID)
	if item == nil {
		s.mu.Unlock()
		return
	}
	item.Ingredients = append(item.Ingredients, recipe.Ingredient{
		ID:     uuid.NewString(),
		Name:   name,
		Amount: strings.TrimSpace(amount),
	})
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// RemoveIngredient deletes an ingredient from an entry.
func (s *CartStore) RemoveIngredient(documentID, ingredientID string) {
	s.mu.Lock()
	item := s.findLocked(documentID)
	if item == nil {
		s.mu.Unlock()
		return
	}
	kept := item.Ingredients[:0]
	for _, ing := range item.Ingredients {
		if ing.ID != ingredientID {
			kept = append(kept, ing)
		}
	}
	item.Ingredients = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateIngredient renames an ingredient and updates its amount. Blank
// names are ignored.
func (s *CartStore) UpdateIngredient(documentID, ingredientID, name, amount string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	item := s.findLocked(documentID)
	if item == nil {
		s.mu.Unlock()
		return
	}
	for i := range item.Ingredients {
		if item.Ingredients[i].ID == ingredientID {
			item.Ingredients[i].Name = name
			item.Ingredients[i].Amount = strings.TrimSpace(amount)
			break
		}
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Items returns an independent copy of the cart entries.
func (s *CartStore) Items() []recipe.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	dup := make([]recipe.CartItem, len(s.items))
	copy(dup, s.items)
	for i := range dup {
		dup[i].Ingredients = s.items[i].CloneIngredients()
	}
	return dup
}

// TotalItems returns the sum of all entry quantities.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Len returns the number of distinct entries.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Syncing reports whether any remote accounting call is in flight.
func (s *CartStore) Syncing() bool {
	return s.syncing.Load() > 0
}

func (s *CartStore) findLocked(documentID string) *recipe.CartItem {
	if idx := s.indexLocked(documentID); idx >= 0 {
		return &s.items[idx]
	}
	return nil
}

func (s *CartStore) indexLocked(documentID string) int {
	for i := range s.items {
		if s.items[i].DocumentID == documentID {
			return i
		}
	}
	return -1
}

// persistLocked writes the snapshot through to the durable cache.
// Failures are logged and swallowed: local state is the primary truth
// for the session.
func (s *CartStore) persistLocked() {
	if err := s.cache.Save(cartCacheKey, s.items); err != nil {
		s.log.Error().Err(err).Msg("persist cart snapshot failed")
	}
}

func (s *CartStore) syncAdd(qty int) {
	if qty <= 0 {
		return
	}
	s.syncing.Add(1)
	go func() {
		defer func() {
			s.syncing.Add(-1)
			s.notify()
		}()
		ctx, cancel := context.WithTimeout(s.ctx, syncTimeout)
		defer cancel()
		if err := s.syncer.AddQuantity(ctx, qty); err != nil {
			s.log.Warn().Err(err).Int("quantity", qty).Msg("cart add sync failed")
		}
	}()
}

func (s *CartStore) syncRemove(qty int) {
	if qty <= 0 {
		return
	}
	s.syncing.Add(1)
	go func() {
		defer func() {
			s.syncing.Add(-1)
			s.notify()
		}()
		ctx, cancel := context.WithTimeout(s.ctx, syncTimeout)
		defer cancel()
		if err := s.syncer.RemoveQuantity(ctx, qty); err != nil {
			s.log.Warn().Err(err).Int("quantity", qty).Msg("cart remove sync failed")
		}
	}()
}

func hasIngredient(ingredients []recipe.Ingredient, id string) bool {
	for _, ing := range ingredients {
		if ing.ID == id {
			return true
		}
	}
	return false
}
