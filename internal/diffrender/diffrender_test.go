package diffrender

import "testing"

func TestRenderAddedLine(t *testing.T) {
	hunks := Render("a\nb\n", "a\nb\nc\n", 3)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	var sawAdd bool
	for _, l := range hunks[0].Lines {
		if l.Type == LineAdd && l.Content == "c" {
			sawAdd = true
		}
	}
	if !sawAdd {
		t.Fatalf("expected an added line %q, got %+v", "c", hunks[0].Lines)
	}
}

func TestRenderNoChanges(t *testing.T) {
	hunks := Render("same\n", "same\n", 3)
	if len(hunks) != 0 {
		t.Fatalf("expected no hunks for identical content, got %d", len(hunks))
	}
}

func TestRenderDeletedLine(t *testing.T) {
	hunks := Render("a\nb\nc\n", "a\nc\n", 3)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	var sawDelete bool
	for _, l := range hunks[0].Lines {
		if l.Type == LineDelete && l.Content == "b" {
			sawDelete = true
		}
	}
	if !sawDelete {
		t.Fatalf("expected a deleted line %q, got %+v", "b", hunks[0].Lines)
	}
}
