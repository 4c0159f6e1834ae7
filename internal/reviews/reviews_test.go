package reviews

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, err := storage.NewStore(afero.NewMemMapFs(), "state", logrus.NewEntry(log))
	require.NoError(t, err)
	return NewService(store, logrus.NewEntry(log))
}

func TestAddReviewStartsUnapproved(t *testing.T) {
	s := newTestService(t)

	review, ok := s.AddReview("p-1", 4, "Solid product", "Ada")

	require.True(t, ok)
	assert.False(t, review.Approved)
	assert.NotEmpty(t, review.ID)

	assert.Empty(t, s.ForProduct("p-1", true))
	assert.Len(t, s.ForProduct("p-1", false), 1)
	assert.Len(t, s.Pending(), 1)
}

func TestAddReviewRejectsEmptyComment(t *testing.T) {
	s := newTestService(t)

	_, ok := s.AddReview("p-1", 4, "   ", "Ada")
	assert.False(t, ok)

	_, ok = s.AddReview("", 4, "text", "Ada")
	assert.False(t, ok)
}

func TestAddReviewClampsRating(t *testing.T) {
	s := newTestService(t)

	high, _ := s.AddReview("p-1", 9, "great", "")
	low, _ := s.AddReview("p-1", -2, "bad", "")

	assert.Equal(t, 5.0, high.Rating)
	assert.Equal(t, 1.0, low.Rating)
	assert.Equal(t, "Anonymous", high.DisplayName)
}

func TestApproveMakesReviewVisible(t *testing.T) {
	s := newTestService(t)
	review, _ := s.AddReview("p-1", 4, "Solid", "Ada")

	require.True(t, s.ApproveReview(review.ID))

	assert.Len(t, s.ForProduct("p-1", true), 1)
	assert.Empty(t, s.Pending())
	assert.Len(t, s.ReviewMap()["p-1"], 1)
}

func TestRejectDropsReview(t *testing.T) {
	s := newTestService(t)
	review, _ := s.AddReview("p-1", 4, "Solid", "Ada")

	s.RejectReview(review.ID)

	assert.Empty(t, s.ForProduct("p-1", false))
	assert.False(t, s.ApproveReview(review.ID))
}
