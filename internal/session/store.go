// Package session holds the per-session shopping state: cart lines,
// wishlist entries, submitted reviews and checkout progress.
//
// A Store is an explicitly owned value; callers reach it through a Manager
// which loads it from a Repository, applies one operation set and saves it
// back.
package session

import (
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
)

type Store struct {
	mu       sync.RWMutex
	cart     []models.CartLine
	wishlist []models.Product
	reviews  []models.Review
	checkout models.CheckoutState
	version  uint64
}

func NewStore() *Store {
	return &Store{checkout: models.CheckoutState{Step: models.StepShipping}}
}

// Version increases with every mutation. Derived views can be cached
// against it.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

func (s *Store) lineIndex(productID int64) int {
	return slices.IndexFunc(s.cart, func(l models.CartLine) bool { return l.Product.ID == productID })
}

// AddToCart increments the product's line by one, clamped to stock, or
// inserts a new line with quantity 1. A product with no stock never gets a
// line. It returns the resulting quantity (0 when no line exists).
func (s *Store) AddToCart(p models.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.lineIndex(p.ID); i >= 0 {
		line := &s.cart[i]
		line.Product = p
		line.Quantity = min(line.Quantity+1, p.Stock)
		if line.Quantity < 1 {
			s.cart = slices.Delete(s.cart, i, i+1)
			s.version++
			return 0
		}
		s.version++
		return line.Quantity
	}

	if p.Stock < 1 {
		return 0
	}

	s.cart = append(s.cart, models.CartLine{Product: p, Quantity: 1})
	s.version++

	return 1
}

func (s *Store) RemoveFromCart(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndex(productID)
	if i < 0 {
		return false
	}

	s.cart = slices.Delete(s.cart, i, i+1)
	s.version++

	return true
}

// UpdateQuantity sets a line's quantity. The value is clamped to the
// product's stock the same way AddToCart clamps, and a quantity below 1
// removes the line. It reports whether a line for productID existed.
func (s *Store) UpdateQuantity(productID int64, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndex(productID)
	if i < 0 {
		return false
	}

	quantity = min(quantity, s.cart[i].Product.Stock)
	if quantity < 1 {
		s.cart = slices.Delete(s.cart, i, i+1)
	} else {
		s.cart[i].Quantity = quantity
	}
	s.version++

	return true
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.version++
}

func (s *Store) CartLines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.cart)
}

// Cart returns the cart with per-line and overall totals.
func (s *Store) Cart() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := models.Cart{Lines: make([]models.CartLineView, 0, len(s.cart))}
	for _, line := range s.cart {
		total := line.LineTotal()
		cart.Lines = append(cart.Lines, models.CartLineView{CartLine: line, LineTotal: total})
		cart.ItemCount += line.Quantity
		cart.Subtotal += total
	}

	return cart
}

// AddToWishlist inserts p unless it is already present.
func (s *Store) AddToWishlist(p models.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.wishlist, func(w models.Product) bool { return w.ID == p.ID }) {
		return false
	}

	s.wishlist = append(s.wishlist, p)
	s.version++

	return true
}

func (s *Store) RemoveFromWishlist(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.wishlist, func(w models.Product) bool { return w.ID == productID })
	if i < 0 {
		return false
	}

	s.wishlist = slices.Delete(s.wishlist, i, i+1)
	s.version++

	return true
}

func (s *Store) IsInWishlist(productID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.ContainsFunc(s.wishlist, func(w models.Product) bool { return w.ID == productID })
}

func (s *Store) Wishlist() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.wishlist)
}

// AddReview appends a fully constructed review.
func (s *Store) AddReview(r models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews = append(s.reviews, r)
	s.version++
}

// ProductReviews returns the reviews for productID in the order they were
// added.
func (s *Store) ProductReviews(productID int64) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Review{}
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}

	return out
}

// ProductRating is the unweighted mean of the product's review ratings,
// 0 when there are none.
func (s *Store) ProductRating(productID int64) models.RatingSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum, total int
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			total++
		}
	}

	summary := models.RatingSummary{Total: total}
	if total > 0 {
		summary.Average = float64(sum) / float64(total)
	}

	return summary
}

// RatingDistribution counts the product's reviews per star value.
func (s *Store) RatingDistribution(productID int64) map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[int]int, models.MaxRating)
	for star := models.MinRating; star <= models.MaxRating; star++ {
		dist[star] = 0
	}
	for _, r := range s.reviews {
		if r.ProductID == productID {
			dist[r.Rating]++
		}
	}

	return dist
}

func (s *Store) LastReviewID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last int64
	for _, r := range s.reviews {
		last = max(last, r.ID)
	}

	return last
}

func (s *Store) Checkout() models.CheckoutState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.checkout
}

func (s *Store) SetCheckout(state models.CheckoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkout = state
	s.version++
}

func (s *Store) ResetCheckout() {
	s.SetCheckout(models.CheckoutState{Step: models.StepShipping})
}

type Snapshot struct {
	Cart     []models.CartLine    `json:"cart"`
	Wishlist []models.Product     `json:"wishlist"`
	Reviews  []models.Review      `json:"reviews"`
	Checkout models.CheckoutState `json:"checkout"`
	Version  uint64               `json:"version"`
}

func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &Snapshot{
		Cart:     slices.Clone(s.cart),
		Wishlist: slices.Clone(s.wishlist),
		Reviews:  slices.Clone(s.reviews),
		Checkout: s.checkout,
		Version:  s.version,
	}
}

// Restore builds a store from a persisted snapshot.
func Restore(snap *Snapshot) *Store {
	s := NewStore()
	if snap == nil {
		return s
	}

	s.cart = slices.Clone(snap.Cart)
	s.wishlist = slices.Clone(snap.Wishlist)
	s.reviews = slices.Clone(snap.Reviews)
	s.version = snap.Version
	if snap.Checkout.Step != 0 {
		s.checkout = snap.Checkout
	}

	return s
}
