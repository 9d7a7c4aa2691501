package phrases

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  hello   world ", "HELLO WORLD"},
		{"Don’t Panic!", "DON'T PANIC"},
		{"rock & roll", "ROCK ROLL"},
		{"café au lait", "CAF AU LAIT"},
		{"42", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		phrase string
		want   bool
	}{
		{"CAT", false},
		{"CATS", true},
		{"ABCDEFGHIJKLMNOPQRSTUVWX", true},
		{"ABCDEFGHIJKLMNOPQRSTUVWXY", false},
		{"ONE TWO THREE FOUR", true},
		{"ONE TWO THREE FOUR FIVE", false},
		{"DON'T PANIC", true},
		{"DON'T WON'T", false},
	}
	for _, c := range cases {
		if got := IsValid(c.phrase); got != c.want {
			t.Errorf("IsValid(%q) = %v, want %v", c.phrase, got, c.want)
		}
	}
}

func TestAutoHint(t *testing.T) {
	if got, want := AutoHint("Food", "APPLE PIE"), "Category: Food • 2 words • 8 letters"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := AutoHint("Tech", "LINUX"), "Category: Tech • 1 word • 5 letters"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseLinesFiltersAndDedupes(t *testing.T) {
	in := "apple pie\n\nCAT\nApple   Pie\nhot sauce\n"
	got, err := ParseLines("Food", strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Phrase != "APPLE PIE" || got[1].Phrase != "HOT SAUCE" {
		t.Fatalf("got %+v", got)
	}
	if got[0].Category != "Food" {
		t.Fatalf("category = %q", got[0].Category)
	}
}

func TestLoadEmbeddedBank(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("embedded bank is empty")
	}
	for _, e := range got {
		if !IsValid(e.Phrase) || e.Category == "" {
			t.Errorf("bad entry %+v", e)
		}
	}
}

func TestLoadFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Movies.txt")
	if err := os.WriteFile(path, []byte("Star Wars\nJaws\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Category != "Movies" {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for a bank with no valid phrases")
	}
}
