package remote

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

type humanizeOptions struct {
	sort bool
}

// HumanizeOption tunes HumanizeList.
type HumanizeOption func(*humanizeOptions)

// WithSort controls whether items are sorted before joining (default true).
func WithSort(sort bool) HumanizeOption {
	return func(o *humanizeOptions) { o.sort = sort }
}

// HumanizeList joins quoted items for display, using conjunction before the
// last one and an Oxford comma when there are three or more:
//
//	HumanizeList([]string{"foo", "bar", "baz"}, "or") == "'bar', 'baz', or 'foo'"
//
// The input slice is not modified.
func HumanizeList(items []string, conjunction string, opts ...HumanizeOption) string {
	o := humanizeOptions{sort: true}
	for _, opt := range opts {
		opt(&o)
	}

	if len(items) == 0 {
		return ""
	}

	ordered := slices.Clone(items)
	if o.sort {
		slices.Sort(ordered)
	}
	quoted := lo.Map(ordered, quoteItem)

	switch len(quoted) {
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " " + conjunction + " " + quoted[1]
	default:
		last := len(quoted) - 1
		return strings.Join(quoted[:last], ", ") + ", " + conjunction + " " + quoted[last]
	}
}
