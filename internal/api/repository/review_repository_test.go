package repository

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedReviewFixtures(t *testing.T, db *gorm.DB) (models.User, models.Title) {
	t.Helper()
	user := models.User{Username: "reader", Email: "reader@example.com"}
	require.NoError(t, db.Create(&user).Error)
	title := models.Title{Name: "Dune", Year: 2021}
	require.NoError(t, db.Create(&title).Error)
	return user, title
}

func TestReviewRepositoryUniqueAuthorTitle(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	user, title := seedReviewFixtures(t, db)

	first := models.Review{AuthorID: user.ID, TitleID: title.ID, Text: "a classic", Score: 9}
	require.NoError(t, repo.Create(ctx, &first))

	second := models.Review{AuthorID: user.ID, TitleID: title.ID, Text: "still a classic", Score: 8}
	require.Error(t, repo.Create(ctx, &second))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A different author may still review the same title.
	other := models.User{Username: "critic", Email: "critic@example.com"}
	require.NoError(t, db.Create(&other).Error)
	third := models.Review{AuthorID: other.ID, TitleID: title.ID, Text: "overrated", Score: 5}
	require.NoError(t, repo.Create(ctx, &third))
}

func TestTitleDeleteCascadesToReviewsAndComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user, title := seedReviewFixtures(t, db)

	review := models.Review{AuthorID: user.ID, TitleID: title.ID, Text: "a classic", Score: 9}
	require.NoError(t, db.Create(&review).Error)
	comment := models.Comment{AuthorID: user.ID, ReviewID: review.ID, Text: "agreed"}
	require.NoError(t, db.Create(&comment).Error)

	require.NoError(t, NewTitleRepository(db).Delete(ctx, title.ID))

	var reviews, comments int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, comments)
}

func TestReviewRepositoryAverageScore(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	user, title := seedReviewFixtures(t, db)

	avg, err := repo.AverageScore(ctx, title.ID)
	require.NoError(t, err)
	assert.Nil(t, avg)

	other := models.User{Username: "critic", Email: "critic@example.com"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Review{AuthorID: user.ID, TitleID: title.ID, Text: "good", Score: 7}).Error)
	require.NoError(t, db.Create(&models.Review{AuthorID: other.ID, TitleID: title.ID, Text: "great", Score: 9}).Error)

	avg, err = repo.AverageScore(ctx, title.ID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 8.0, *avg, 0.001)
}
