package view

import (
	"reflect"
	"strings"
	"testing"

	"forumcli/pkg/models"
)

func postIDs(ps []models.Post) []int {
	ids := make([]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestPresentFilterProperties(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Title: "Deadlift form check"},
		{ID: 2, Title: "Bench press plateau"},
		{ID: 3, Title: "Morning routine"},
		{ID: 4, Title: "BENCH accessories"},
	}

	got := Present(posts, "bench", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, p := range got {
		if !strings.Contains(strings.ToLower(p.Title), "bench") {
			t.Fatalf("filtered item %q does not contain the term", p.Title)
		}
	}

	// blank and whitespace-only terms pass everything through unchanged
	for _, term := range []string{"", "   "} {
		got := Present(posts, term, "")
		if !reflect.DeepEqual(postIDs(got), []int{1, 2, 3, 4}) {
			t.Fatalf("blank term %q: got order %v", term, postIDs(got))
		}
	}
}

func TestPresentDoesNotMutateInput(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Title: "b", Likes: 1},
		{ID: 2, Title: "a", Likes: 9},
	}
	_ = Present(posts, "", SortAlphabetic)
	_ = Present(posts, "", SortLiked)
	if !reflect.DeepEqual(postIDs(posts), []int{1, 2}) {
		t.Fatalf("input slice was reordered: %v", postIDs(posts))
	}
}

func TestPresentSortLiked(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Likes: 2},
		{ID: 2, Likes: 7},
		{ID: 3}, // missing count sorts as zero
		{ID: 4, Likes: 7},
	}
	got := Present(posts, "", SortLiked)
	for i := 1; i < len(got); i++ {
		if got[i-1].Likes < got[i].Likes {
			t.Fatalf("likes not descending at %d: %v", i, postIDs(got))
		}
	}
	// ties keep input order (stable sort contract)
	if !reflect.DeepEqual(postIDs(got), []int{2, 4, 1, 3}) {
		t.Fatalf("got order %v, want [2 4 1 3]", postIDs(got))
	}
}

func TestPresentSortRecent(t *testing.T) {
	posts := []models.Post{
		{ID: 1, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: 2, CreatedAt: "2024-06-01T00:00:00Z"},
		{ID: 3, CreatedAt: "bogus"}, // unparseable sorts last
		{ID: 4, CreatedAt: "2024-03-01 12:00:00"},
	}
	got := Present(posts, "", SortRecent)
	if !reflect.DeepEqual(postIDs(got), []int{2, 4, 1, 3}) {
		t.Fatalf("got order %v, want [2 4 1 3]", postIDs(got))
	}
}

func TestPresentSortAlphabetic(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Title: "banana"},
		{ID: 2, Title: "Apple"},
		{ID: 3, Title: "cherry"},
	}
	got := Present(posts, "", SortAlphabetic)
	if !reflect.DeepEqual(postIDs(got), []int{2, 1, 3}) {
		t.Fatalf("got order %v, want [2 1 3]", postIDs(got))
	}
}

func TestPresentIdempotent(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Title: "b", Likes: 3, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: 2, Title: "a", Likes: 5, CreatedAt: "2024-06-01T00:00:00Z"},
		{ID: 3, Title: "ab", Likes: 5, CreatedAt: "2024-02-01T00:00:00Z"},
	}
	for _, mode := range []SortMode{SortAlphabetic, SortRecent, SortLiked} {
		once := Present(posts, "a", mode)
		twice := Present(once, "a", mode)
		if !reflect.DeepEqual(postIDs(once), postIDs(twice)) {
			t.Fatalf("mode %s not idempotent: %v vs %v", mode, postIDs(once), postIDs(twice))
		}
	}
}

// Mirrors the end-to-end posts scenario: two posts where every sort mode
// happens to produce the same order.
func TestPresentPostsScenario(t *testing.T) {
	posts := []models.Post{
		{ID: 1, Likes: 2, Title: "B", CreatedAt: "2024-01-01"},
		{ID: 2, Likes: 5, Title: "A", CreatedAt: "2024-06-01"},
	}
	for _, mode := range []SortMode{SortLiked, SortAlphabetic, SortRecent} {
		got := Present(posts, "", mode)
		if !reflect.DeepEqual(postIDs(got), []int{2, 1}) {
			t.Fatalf("mode %s: got order %v, want [2 1]", mode, postIDs(got))
		}
	}
}

func TestPresentCommentsSearchContent(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, Content: "totally agree"},
		{ID: 2, Content: "hard disagree"},
	}
	got := Present(comments, "AGREE", "")
	if len(got) != 2 {
		t.Fatalf("expected both comments to match, got %d", len(got))
	}
	got = Present(comments, "hard", "")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only comment 2, got %v", got)
	}
}

func TestParseSortMode(t *testing.T) {
	for _, s := range []string{"alphabetic", "Recent", " LIKED "} {
		if _, err := ParseSortMode(s); err != nil {
			t.Fatalf("ParseSortMode(%q): %v", s, err)
		}
	}
	if _, err := ParseSortMode("newest"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
