package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/stonefront-backend/internal/dbtest"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

func TestFindRanksPrefixMatchesFirst(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&[]models.Category{
		{Name: "Sandstone Paving", Slug: "sandstone-paving"},
		{Name: "Indian Sandstone", Slug: "indian-sandstone"},
		{Name: "Limestone", Slug: "limestone"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Product{
		{Name: "Raj Green Sandstone", Slug: "raj-green", Images: types.Images{{URL: "/raj.jpg"}}},
		{Name: "Sandstone Setts", Slug: "sandstone-setts"},
		{Name: "Kandla Grey Sandstone", Slug: "kandla-grey"},
	}).Error)

	svc, err := NewService(db, func(p string) string { return "https://cdn.test" + p })
	require.NoError(t, err)

	res, err := svc.Find(context.Background(), "  SANDstone ")
	require.NoError(t, err)

	require.Len(t, res.Categories, 2)
	assert.Equal(t, "sandstone-paving", res.Categories[0].Slug)
	assert.Equal(t, "indian-sandstone", res.Categories[1].Slug)

	require.Len(t, res.Products, 3)
	assert.Equal(t, []string{"sandstone-setts", "kandla-grey", "raj-green"},
		[]string{res.Products[0].Slug, res.Products[1].Slug, res.Products[2].Slug})
	assert.Equal(t, "https://cdn.test/raj.jpg", res.Products[2].Image)
}

func TestFindShortQueryAndCaps(t *testing.T) {
	db := dbtest.Open(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.Product{Name: fmt.Sprintf("Slate %02d", i), Slug: fmt.Sprintf("slate-%02d", i)}).Error)
	}
	svc, err := NewService(db, nil)
	require.NoError(t, err)

	empty, err := svc.Find(context.Background(), "s")
	require.NoError(t, err)
	assert.NotNil(t, empty.Categories)
	assert.Empty(t, empty.Products)

	capped, err := svc.Find(context.Background(), "slate")
	require.NoError(t, err)
	require.Len(t, capped.Products, 8)
	assert.Equal(t, "slate-00", capped.Products[0].Slug)

	literal, err := svc.Find(context.Background(), "50%")
	require.NoError(t, err)
	assert.Empty(t, literal.Products)
}

func TestRankAlphabeticalWithinGroups(t *testing.T) {
	t.Parallel()

	got := rank([]Hit{{Name: "b grey"}, {Name: "Grey b"}, {Name: "a grey"}, {Name: "grey a"}}, "grey", 10)
	want := []string{"grey a", "Grey b", "a grey", "b grey"}
	for i, h := range got {
		if h.Name != want[i] {
			t.Fatalf("position %d: got %q want %q", i, h.Name, want[i])
		}
	}
}
