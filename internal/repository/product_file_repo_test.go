package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"marketplace_service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProductRepository_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "products.json")

	repo := NewFileProductRepository(path, newTestLogger())
	first, err := repo.CreateProduct(ctx, chair())
	require.NoError(t, err)
	second, err := repo.CreateProduct(ctx, &domain.Product{Name: "Table", Price: 80})
	require.NoError(t, err)

	reopened := NewFileProductRepository(path, newTestLogger())
	products, err := reopened.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, *first, products[0])
	assert.Equal(t, *second, products[1])

	third, err := reopened.CreateProduct(ctx, &domain.Product{Name: "Lamp"})
	require.NoError(t, err)
	secondID, _ := strconv.ParseInt(second.ID, 10, 64)
	thirdID, _ := strconv.ParseInt(third.ID, 10, 64)
	assert.Greater(t, thirdID, secondID)
}

func TestFileProductRepository_WritesIndentedArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "products.json")
	repo := NewFileProductRepository(path, newTestLogger())

	created, err := repo.CreateProduct(ctx, chair())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")

	var onDisk []domain.Product
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []domain.Product{*created}, onDisk)

	removed, err := repo.DeleteProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Empty(t, onDisk)
}

func TestFileProductRepository_MalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewFileProductRepository(path, newTestLogger())
	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestFileProductRepository_NullFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	products, err := NewFileProductRepository(path, newTestLogger()).ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestFileProductRepository_WriteFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := NewFileProductRepository(filepath.Join(blocker, "products.json"), newTestLogger())

	_, err := repo.CreateProduct(ctx, chair())
	require.Error(t, err)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFileProductRepository_DeleteWriteFailureRestoresOrder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "products.json")
	repo := NewFileProductRepository(path, newTestLogger()).(*fileProductRepository)

	a, err := repo.CreateProduct(ctx, &domain.Product{Name: "A"})
	require.NoError(t, err)
	b, err := repo.CreateProduct(ctx, &domain.Product{Name: "B"})
	require.NoError(t, err)
	c, err := repo.CreateProduct(ctx, &domain.Product{Name: "C"})
	require.NoError(t, err)

	// Point the repository somewhere unwritable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	repo.path = filepath.Join(blocker, "products.json")

	removed, err := repo.DeleteProduct(ctx, b.ID)
	require.Error(t, err)
	assert.False(t, removed)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{products[0].ID, products[1].ID, products[2].ID})
}
