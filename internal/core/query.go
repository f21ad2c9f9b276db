// AngelaMos | 2026
// query.go

package core

import (
	"fmt"
	"strings"
)

// Filter accumulates AND-ed SQL conditions with positional arguments.
type Filter struct {
	conds []string
	args  []any
}

func NewFilter(conds ...string) *Filter {
	return &Filter{conds: conds}
}

// Add appends a condition whose placeholders reference the next argument,
// e.g. "role = $%d" or "(a ILIKE $%[1]d OR b ILIKE $%[1]d)".
func (f *Filter) Add(format string, arg any) *Filter {
	f.args = append(f.args, arg)
	f.conds = append(f.conds, fmt.Sprintf(format, len(f.args)))
	return f
}

func (f *Filter) Where() string {
	if len(f.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(f.conds, " AND ")
}

func (f *Filter) Args() []any {
	return f.args
}

// Paged returns LIMIT/OFFSET placeholders and the args extended with them.
func (f *Filter) Paged(p PageRequest) (string, []any) {
	n := p.Normalize()
	next := len(f.args) + 1
	args := append(append([]any{}, f.args...), n.PageSize, n.Offset())
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", next, next+1), args
}

// Contains builds an ILIKE substring pattern with wildcards escaped.
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
