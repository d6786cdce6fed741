package journal

import (
	"reflect"
	"testing"
)

func TestDeriveTags_MatchesCategories(t *testing.T) {
	tags := DeriveTags("Sunset hike up the mountain", "")

	want := []string{"mountain", "sunset"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("expected %v, got %v", want, tags)
	}
}

func TestDeriveTags_UsesDescription(t *testing.T) {
	tags := DeriveTags("Day three", "amazing street food at the night market")

	want := []string{"food", "shopping"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("expected %v, got %v", want, tags)
	}
}

func TestDeriveTags_CaseInsensitive(t *testing.T) {
	tags := DeriveTags("BEACH DAY", "")

	want := []string{"beach"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("expected %v, got %v", want, tags)
	}
}

func TestDeriveTags_FallbackWhenNothingMatches(t *testing.T) {
	for _, tc := range []struct{ title, desc string }{
		{"", ""},
		{"Untitled", "nothing notable happened"},
	} {
		tags := DeriveTags(tc.title, tc.desc)
		if len(tags) != 1 || tags[0] != FallbackTag {
			t.Errorf("DeriveTags(%q, %q) = %v, expected [%s]", tc.title, tc.desc, tags, FallbackTag)
		}
	}
}

func TestDeriveTags_Deduplicates(t *testing.T) {
	// Both "mountain" and "peak" imply the same category.
	tags := DeriveTags("Mountain peak at dawn", "")

	want := []string{"mountain", "sunset"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("expected %v, got %v", want, tags)
	}
}

func TestDeriveTags_Deterministic(t *testing.T) {
	first := DeriveTags("city museum and beach sunset", "great food with friends")
	for i := 0; i < 10; i++ {
		again := DeriveTags("city museum and beach sunset", "great food with friends")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %v vs %v", i, first, again)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Beach ", "beach", "FOOD", "", "bad,tag", "food"})

	want := []string{"beach", "food"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNormalizeTags_Empty(t *testing.T) {
	if got := NormalizeTags(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if got := NormalizeTags([]string{"", "  ", "a,b"}); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestFlattenLabels(t *testing.T) {
	labels := [][]string{
		{"Beach", "Ocean"},
		{"beach", "Palm Tree"},
		nil,
		{"Sky"},
	}

	got := FlattenLabels(labels)
	want := []string{"beach", "ocean", "palm tree", "sky"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
