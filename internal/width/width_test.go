package width

import "testing"

func TestRuneWidths(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'é', 1},
		{'キ', 2},
		{'中', 2},
		{'\t', Tab},
		{'\u0301', 0}, // combining acute accent
	}
	for _, tc := range cases {
		got, ok := Rune(tc.r)
		if !ok {
			t.Fatalf("Rune(%q) not representable", tc.r)
		}
		if got != tc.want {
			t.Fatalf("Rune(%q) = %d, want %d", tc.r, got, tc.want)
		}
	}
}

func TestRuneUnrepresentable(t *testing.T) {
	for _, r := range []rune{0x00, 0x07, 0x1b, 0x7f, 0x85, 0x0378} {
		if w, ok := Rune(r); ok {
			t.Fatalf("Rune(%U) = %d, want unrepresentable", r, w)
		}
	}
}

func TestStringFailsFast(t *testing.T) {
	if w, ok := String("キロ editor"); !ok || w != 11 {
		t.Fatalf("String = %d ok=%v, want 11 true", w, ok)
	}
	if _, ok := String("ab\x01cd"); ok {
		t.Fatalf("String with control code ok = true, want false")
	}
	if got := StringOrLen("ab\x01cd"); got != 5 {
		t.Fatalf("StringOrLen fallback = %d, want 5", got)
	}
	if got := RunesOrLen([]rune("日本")); got != 4 {
		t.Fatalf("RunesOrLen = %d, want 4", got)
	}
}

func TestCropASCII(t *testing.T) {
	s := "hello world"
	for n := 0; n <= len(s); n++ {
		if got := Crop(s, 0, n); got != s[:n] {
			t.Fatalf("Crop(%q, 0, %d) = %q, want %q", s, n, got, s[:n])
		}
	}
	if got := Crop(s, 6, 100); got != "world" {
		t.Fatalf("Crop offset = %q, want %q", got, "world")
	}
	if got := Crop(s, 50, 10); got != "" {
		t.Fatalf("Crop past end = %q, want empty", got)
	}
}

func TestCropCountsDisplayColumns(t *testing.T) {
	if got := Crop("héllo", 0, 3); got != "hél" {
		t.Fatalf("Crop(héllo, 0, 3) = %q, want %q", got, "hél")
	}
	if got := Crop("héllo", 1, 2); got != "él" {
		t.Fatalf("Crop(héllo, 1, 2) = %q, want %q", got, "él")
	}
}

func TestCropWideRunes(t *testing.T) {
	// each rune is two columns wide
	s := "日本語"
	if got := Crop(s, 0, 3); got != "日" {
		t.Fatalf("Crop(%q, 0, 3) = %q, want %q", s, got, "日")
	}
	if got := Crop(s, 0, 4); got != "日本" {
		t.Fatalf("Crop(%q, 0, 4) = %q, want %q", s, got, "日本")
	}
	// starting in the middle of a wide rune skips it
	if got := Crop(s, 1, 5); got != "本語" {
		t.Fatalf("Crop(%q, 1, 5) = %q, want %q", s, got, "本語")
	}
}

func TestCropRangeIndices(t *testing.T) {
	rs := []rune("a\tb")
	from, to := CropRange(rs, 0, 8)
	if from != 0 || to != 1 {
		t.Fatalf("CropRange tab = %d..%d, want 0..1", from, to)
	}
	from, to = CropRange(rs, 1, 9)
	if from != 1 || to != 3 {
		t.Fatalf("CropRange = %d..%d, want 1..3", from, to)
	}
}
