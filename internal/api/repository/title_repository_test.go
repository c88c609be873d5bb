package repository

import (
	"context"
	"testing"

	"reviewhub/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleRepositoryListReturnsFullRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewTitleRepository(db)
	ctx := context.Background()

	cat := models.Category{Name: "Books", Slug: "books"}
	require.NoError(t, db.Create(&cat).Error)
	scifi := models.Genre{Name: "Sci-Fi", Slug: "scifi"}
	require.NoError(t, db.Create(&scifi).Error)

	title := models.Title{
		Name:       "Dune",
		Year:       2021,
		CategoryID: &cat.ID,
		Genres:     []models.Genre{scifi},
	}
	require.NoError(t, repo.Create(ctx, &title))

	// The count runs on the same builder as the page query; make sure the
	// rows come back with every column, not just the id.
	list, total, err := repo.List(ctx, TitleFilter{}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, title.ID, got.ID)
	assert.Equal(t, "Dune", got.Name)
	assert.Equal(t, 2021, got.Year)
	require.NotNil(t, got.Category)
	assert.Equal(t, "books", got.Category.Slug)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "scifi", got.Genres[0].Slug)
}

func TestTitleRepositoryListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewTitleRepository(db)
	ctx := context.Background()

	books := models.Category{Name: "Books", Slug: "books"}
	movies := models.Category{Name: "Movies", Slug: "movies"}
	require.NoError(t, db.Create(&books).Error)
	require.NoError(t, db.Create(&movies).Error)
	scifi := models.Genre{Name: "Sci-Fi", Slug: "scifi"}
	drama := models.Genre{Name: "Drama", Slug: "drama"}
	require.NoError(t, db.Create(&scifi).Error)
	require.NoError(t, db.Create(&drama).Error)

	dune := models.Title{Name: "Dune", Year: 2021, CategoryID: &movies.ID, Genres: []models.Genre{scifi, drama}}
	require.NoError(t, repo.Create(ctx, &dune))
	magnolia := models.Title{Name: "Magnolia", Year: 1999, CategoryID: &movies.ID, Genres: []models.Genre{drama}}
	require.NoError(t, repo.Create(ctx, &magnolia))

	list, total, err := repo.List(ctx, TitleFilter{GenreSlug: "scifi"}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Dune", list[0].Name)
	assert.Equal(t, 2021, list[0].Year)

	// Two genre links on one title must not double the count.
	list, total, err = repo.List(ctx, TitleFilter{GenreSlug: "drama"}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = repo.List(ctx, TitleFilter{Year: 1999}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Magnolia", list[0].Name)

	_, total, err = repo.List(ctx, TitleFilter{CategorySlug: "books"}, 1, 5)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTitleRepositoryListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewTitleRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		title := models.Title{Name: name, Year: 2000}
		require.NoError(t, repo.Create(ctx, &title))
	}

	list, total, err := repo.List(ctx, TitleFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Gamma", list[0].Name)
}
