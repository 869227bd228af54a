// Package frontend is the integration point a real deployment of this
// lowering engine plugs its parser and type checker into. AST construction
// and type inference are explicitly out of scope for this module (they are
// consumed as inputs, not built here); this package exists so cmd/dslxc has
// a single, named place to wire one in rather than leaving the CLI with no
// obvious seam at all.
package frontend

import (
	"fmt"

	"github.com/githubhjs/xls/internal/ast"
)

// Load is expected to parse and type-check the DSLX sources rooted at
// path and return the resulting AST plus its TypeInfo oracle. No such
// front end ships with this module; callers needing one should link
// against whatever parser/type-checker they use and have it implement
// ast.TypeInfo directly, bypassing this package entirely.
func Load(path string) (*ast.Module, ast.TypeInfo, error) {
	return nil, nil, fmt.Errorf("frontend: no parser/type-checker is wired in for %s; see internal/frontend doc comment", path)
}
