package categories_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"blogdeck/internal/categories"
	"blogdeck/internal/core"
)

func cat(id int64, name string, parent *int64) core.Category {
	return core.Category{ID: id, Name: name, ParentID: parent}
}

func TestBuildTree(t *testing.T) {
	t.Parallel()

	t.Run("groups children under their parents in API order", func(t *testing.T) {
		t.Parallel()

		flat := []core.Category{
			cat(1, "Backend", nil),
			cat(2, "Frontend", nil),
			cat(10, "Java", lo.ToPtr(int64(1))),
			cat(11, "Go", lo.ToPtr(int64(1))),
			cat(20, "React", lo.ToPtr(int64(2))),
		}

		tree := categories.BuildTree(flat)

		require.Len(t, tree, 2)
		require.Equal(t, "Backend", tree[0].Name)
		require.Equal(t, []string{"Java", "Go"}, lo.Map(tree[0].Children, func(c core.Category, _ int) string {
			return c.Name
		}))
		require.Equal(t, "Frontend", tree[1].Name)
		require.Len(t, tree[1].Children, 1)
	})

	t.Run("orphaned children are omitted, never an error", func(t *testing.T) {
		t.Parallel()

		flat := []core.Category{
			cat(1, "Backend", nil),
			cat(10, "Java", lo.ToPtr(int64(1))),
			cat(99, "Lost", lo.ToPtr(int64(42))),
		}

		tree := categories.BuildTree(flat)

		require.Len(t, tree, 1)
		require.Len(t, tree[0].Children, 1)
		require.Equal(t, "Java", tree[0].Children[0].Name)
	})

	t.Run("empty input yields empty tree", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, categories.BuildTree(nil))
	})
}

func TestWithAll(t *testing.T) {
	t.Parallel()

	tree := categories.BuildTree([]core.Category{cat(1, "Backend", nil)})
	tree = categories.WithAll(tree, 42)

	require.Len(t, tree, 2)
	require.Equal(t, categories.All, tree[0].SelectionID())
	require.Equal(t, int64(42), tree[0].PostCount)
	require.Equal(t, "1", tree[1].SelectionID())
}
