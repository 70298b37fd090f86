package reminders

import "github.com/sahilm/fuzzy"

// listSource implements fuzzy.Source over list names.
type listSource []List

func (s listSource) String(i int) string { return s[i].Name }
func (s listSource) Len() int            { return len(s) }

// Match fuzzy-filters lists by name against query, best matches first.
// An empty query returns the lists unchanged.
func Match(lists []List, query string) []List {
	if query == "" {
		return lists
	}
	matches := fuzzy.FindFrom(query, listSource(lists))
	matched := make([]List, len(matches))
	for i, m := range matches {
		matched[i] = lists[m.Index]
	}
	return matched
}
