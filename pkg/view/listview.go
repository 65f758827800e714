package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortAlphabetic SortMode = "alphabetic"
	SortRecent     SortMode = "recent"
	SortLiked      SortMode = "liked"
)

// ParseSortMode maps a user-supplied string onto a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortAlphabetic:
		return SortAlphabetic, nil
	case SortRecent:
		return SortRecent, nil
	case SortLiked:
		return SortLiked, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want alphabetic, recent or liked)", s)
}

// Item is the surface an entity exposes to the presentation pipeline.
// Topics have no likes or timestamps and return zero values; comments
// expose their content as the title text.
type Item interface {
	ItemTitle() string
	ItemLikes() int
	ItemCreated() string
}

// Present filters items by case-insensitive substring match of search
// against the title text (a blank search passes everything through), then
// orders the survivors by mode. The input slice is never mutated; sorting
// is stable, so equal keys keep their input order. Timestamps that fail to
// parse sort as the zero time, and the zero like count needs no special
// casing.
func Present[E Item](items []E, search string, mode SortMode) []E {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]E, 0, len(items))
	for _, it := range items {
		if q == "" || strings.Contains(strings.ToLower(it.ItemTitle()), q) {
			out = append(out, it)
		}
	}

	switch mode {
	case SortAlphabetic:
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].ItemTitle(), out[j].ItemTitle()) < 0
		})
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool {
			ti, _ := ParseTimestamp(out[i].ItemCreated())
			tj, _ := ParseTimestamp(out[j].ItemCreated())
			return ti.After(tj)
		})
	case SortLiked:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ItemLikes() > out[j].ItemLikes()
		})
	}
	return out
}
