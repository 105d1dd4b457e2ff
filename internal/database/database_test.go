package database

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fozemdestaque/portal/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	dbPath := "./test_portal_" + t.Name() + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestDatabase_CreateAndGetCategory(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	category := &entities.Category{Name: "Cidade", Slug: "cidade", Active: true}
	require.NoError(t, db.CreateCategory(category))
	assert.NotEmpty(t, category.ID)

	found, err := db.GetCategoryBySlug("cidade")
	require.NoError(t, err)
	assert.Equal(t, category.ID, found.ID)
	assert.Equal(t, "Cidade", found.Name)
}

func TestDatabase_CategorySlugUnique(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.CreateCategory(&entities.Category{Name: "Esporte", Slug: "esporte"}))

	err := db.CreateCategory(&entities.Category{Name: "Esportes", Slug: "esporte"})
	assert.Error(t, err)
}

func TestDatabase_PostSlugExists(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	exists, err := db.PostSlugExists("nada-aqui")
	require.NoError(t, err)
	assert.False(t, exists)

	post := &entities.Post{Title: "Foz", Slug: "foz", Status: entities.PostStatusDraft}
	require.NoError(t, db.CreatePost(post))

	exists, err = db.PostSlugExists("foz")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDatabase_PostSlugUniqueConstraint(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.CreatePost(&entities.Post{Title: "A", Slug: "repetido"}))

	err := db.CreatePost(&entities.Post{Title: "B", Slug: "repetido"})
	assert.Error(t, err)
}

func TestDatabase_ListPostsOrdering(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	older := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.CreatePost(&entities.Post{Title: "Rascunho", Slug: "rascunho"}))
	require.NoError(t, db.CreatePost(&entities.Post{Title: "Antiga", Slug: "antiga", Status: entities.PostStatusPublished, PublishedAt: &older}))
	require.NoError(t, db.CreatePost(&entities.Post{Title: "Recente", Slug: "recente", Status: entities.PostStatusPublished, PublishedAt: &newer}))

	posts, err := db.ListPosts("", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "recente", posts[0].Slug)
	assert.Equal(t, "antiga", posts[1].Slug)
	assert.Equal(t, "rascunho", posts[2].Slug)

	count, err := db.CountPosts("")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDatabase_ListPostsPagination(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, slug := range []string{"um", "dois", "tres"} {
		require.NoError(t, db.CreatePost(&entities.Post{Title: slug, Slug: slug}))
	}

	page, err := db.ListPosts("", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestDatabase_Users(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := db.CreateUser("redacao", "redacao@fozemdestaque.com.br", "hash", entities.RoleEditor)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Len(t, user.Token, 64)

	byToken, err := db.GetUserByToken(user.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byToken.ID)

	byName, err := db.GetUserByUsername("redacao")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestDatabase_GetAdminUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetAdminUser()
	assert.Error(t, err)

	_, err = db.CreateUser("editor", "e@x.com", "hash", entities.RoleEditor)
	require.NoError(t, err)
	admin, err := db.CreateUser("admin", "a@x.com", "hash", entities.RoleAdmin)
	require.NoError(t, err)

	found, err := db.GetAdminUser()
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)
}

func TestDatabase_ListPostsByCategory(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	cidade := &entities.Category{Name: "Cidade", Slug: "cidade"}
	esporte := &entities.Category{Name: "Esporte", Slug: "esporte"}
	require.NoError(t, db.CreateCategory(cidade))
	require.NoError(t, db.CreateCategory(esporte))

	require.NoError(t, db.CreatePost(&entities.Post{Title: "Obras", Slug: "obras", CategoryID: &cidade.ID}))
	require.NoError(t, db.CreatePost(&entities.Post{Title: "Final", Slug: "final", CategoryID: &esporte.ID}))
	require.NoError(t, db.CreatePost(&entities.Post{Title: "Sem categoria", Slug: "sem-categoria"}))

	posts, err := db.ListPosts("cidade", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "obras", posts[0].Slug)

	count, err := db.CountPosts("cidade")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := db.ListPosts("", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
