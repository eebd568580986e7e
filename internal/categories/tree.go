// Package categories turns the flat hierarchy list into a two-level tree
// and tracks which nodes currently filter the post feed.
package categories

import (
	"strconv"

	"github.com/samber/lo"

	"blogdeck/internal/core"
)

// All is the synthetic pseudo-category id meaning "no filter".
const All = "all"

type Node struct {
	core.Category

	Children []core.Category
}

// BuildTree groups child categories under their top-level parents,
// preserving the API-provided relative order on both levels. Children whose
// parent id matches no top-level category are omitted. The "all" entry is
// not this builder's business, callers prepend it via WithAll.
func BuildTree(flat []core.Category) []Node {
	tops := lo.Filter(flat, func(c core.Category, _ int) bool {
		return c.TopLevel()
	})

	return lo.Map(tops, func(top core.Category, _ int) Node {
		children := lo.Filter(flat, func(c core.Category, _ int) bool {
			return c.ParentID != nil && *c.ParentID == top.ID
		})
		return Node{Category: top, Children: children}
	})
}

// WithAll prepends the synthetic "all" node carrying the current total
// post count.
func WithAll(tree []Node, totalPosts int64) []Node {
	all := Node{Category: core.Category{Name: "All", PostCount: totalPosts}}
	return append([]Node{all}, tree...)
}

// SelectionID returns the selection id for a node: the literal "all" for
// the synthetic node, the decimal category id otherwise.
func (n Node) SelectionID() string {
	if n.Category.ID == 0 && n.TopLevel() {
		return All
	}
	return strconv.FormatInt(n.Category.ID, 10)
}
