package lyrics

import "testing"

func TestSimilarity_EqualNormalizedStrings(t *testing.T) {
	cases := [][2]string{
		{"Bohemian Rhapsody", "Bohemian Rhapsody"},
		{"bohemian rhapsody", "BOHEMIAN RHAPSODY"},
		{"  Hotel California  ", "hotel california"},
		{"Café Tacvba", "cafe tacvba"},
		{"", ""},
	}

	for _, c := range cases {
		if got := Similarity(c[0], c[1]); got != 1 {
			t.Errorf("Similarity(%q, %q) = %v, want 1", c[0], c[1], got)
		}
	}
}

func TestSimilarity_SymmetryAndRange(t *testing.T) {
	pairs := [][2]string{
		{"Test Song", "Best Song"},
		{"Stairway to Heaven", "Highway to Hell"},
		{"a", "completely different"},
		{"", "something"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], ab)
		}
	}
}

func TestSimilarity_KnownDistance(t *testing.T) {
	// "kitten" -> "sitting" is the classic 3-edit example
	got := Similarity("kitten", "sitting")
	want := 1 - 3.0/7.0
	if got != want {
		t.Errorf("Similarity(kitten, sitting) = %v, want %v", got, want)
	}
}

func TestSimilarity_TotallyDifferent(t *testing.T) {
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("Similarity(abc, xyz) = %v, want 0", got)
	}
}
