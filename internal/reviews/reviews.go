package reviews

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// Service keeps locally drafted reviews that await moderation. Drafts
// are invisible to product rating math until approved.
type Service struct {
	mu    sync.Mutex
	store *storage.Store
	log   *logrus.Entry
}

func NewService(store *storage.Store, log *logrus.Entry) *Service {
	return &Service{store: store, log: log}
}

// AddReview drafts an unapproved review for a product. Empty comments
// are rejected by returning the zero review and false.
func (s *Service) AddReview(productID string, rating float64, comment, displayName string) (models.Review, bool) {
	comment = strings.TrimSpace(comment)
	if productID == "" || comment == "" {
		return models.Review{}, false
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	if displayName == "" {
		displayName = "Anonymous"
	}

	review := models.Review{
		ID:          uuid.NewString(),
		ProductID:   productID,
		Rating:      rating,
		Comment:     comment,
		DisplayName: displayName,
		Date:        time.Now().Format("2006-01-02"),
		Approved:    false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	storage.UpdateJSON(s.store, storage.KeyReviews, func(all []models.Review) []models.Review {
		return append(all, review)
	}, []models.Review{})
	return review, true
}

// ApproveReview flips a drafted review to approved.
func (s *Service) ApproveReview(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	storage.UpdateJSON(s.store, storage.KeyReviews, func(all []models.Review) []models.Review {
		for i := range all {
			if all[i].ID == id {
				all[i].Approved = true
				found = true
			}
		}
		return all
	}, []models.Review{})
	return found
}

// RejectReview drops a drafted review.
func (s *Service) RejectReview(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	storage.UpdateJSON(s.store, storage.KeyReviews, func(all []models.Review) []models.Review {
		out := all[:0]
		for _, r := range all {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out
	}, []models.Review{})
}

// ForProduct returns drafted reviews for a product, approved only when
// approvedOnly is set.
func (s *Service) ForProduct(productID string, approvedOnly bool) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := storage.GetJSON(s.store, storage.KeyReviews, []models.Review{})
	var out []models.Review
	for _, r := range all {
		if r.ProductID != productID {
			continue
		}
		if approvedOnly && !r.Approved {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Pending returns every review still awaiting moderation.
func (s *Service) Pending() []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := storage.GetJSON(s.store, storage.KeyReviews, []models.Review{})
	var out []models.Review
	for _, r := range all {
		if !r.Approved {
			out = append(out, r)
		}
	}
	return out
}

// ReviewMap groups approved reviews by product id.
func (s *Service) ReviewMap() map[string][]models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := storage.GetJSON(s.store, storage.KeyReviews, []models.Review{})
	out := make(map[string][]models.Review)
	for _, r := range all {
		if r.Approved {
			out[r.ProductID] = append(out[r.ProductID], r)
		}
	}
	return out
}
