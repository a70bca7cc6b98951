package engine

import (
	"slices"

	"github.com/caas-team/tpu-doc/pkg/checks"
)

type filterMode int

const (
	modeAll filterMode = iota
	modeCategories
	modeOnly
	modeExcluding
)

// Filter selects the checks of a run. The zero value selects every check.
type Filter struct {
	mode       filterMode
	categories []checks.Category
	ids        []string
}

// RunAll selects every registered check.
func RunAll() Filter {
	return Filter{mode: modeAll}
}

// RunCategories selects the checks of the given categories in registry order.
// No categories selects every check.
func RunCategories(cats ...checks.Category) Filter {
	if len(cats) == 0 {
		return RunAll()
	}
	return Filter{mode: modeCategories, categories: cats}
}

// RunOnly selects the given checks in the given order. Unknown ids are
// ignored and duplicates collapsed.
func RunOnly(ids ...string) Filter {
	return Filter{mode: modeOnly, ids: ids}
}

// RunExcluding selects every check but the given ones.
func RunExcluding(ids ...string) Filter {
	return Filter{mode: modeExcluding, ids: ids}
}

// Select returns the subset of all chosen by the filter.
func (f Filter) Select(all []checks.Registered) []checks.Registered {
	switch f.mode {
	case modeCategories:
		var out []checks.Registered
		for _, rc := range all {
			if slices.Contains(f.categories, rc.Category) {
				out = append(out, rc)
			}
		}
		return out
	case modeOnly:
		index := make(map[string]int, len(all))
		for i, rc := range all {
			index[rc.ID] = i
		}
		seen := map[string]bool{}
		var out []checks.Registered
		for _, id := range f.ids {
			i, ok := index[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, all[i])
		}
		return out
	case modeExcluding:
		var out []checks.Registered
		for _, rc := range all {
			if !slices.Contains(f.ids, rc.ID) {
				out = append(out, rc)
			}
		}
		return out
	default:
		return slices.Clone(all)
	}
}

// String describes the filter for logs.
func (f Filter) String() string {
	switch f.mode {
	case modeCategories:
		names := make([]string, 0, len(f.categories))
		for _, c := range f.categories {
			names = append(names, c.String())
		}
		return "categories" + listString(names)
	case modeOnly:
		return "only" + listString(f.ids)
	case modeExcluding:
		return "excluding" + listString(f.ids)
	default:
		return "all"
	}
}

func listString(s []string) string {
	out := "["
	for i, v := range s {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out + "]"
}
