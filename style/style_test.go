package style

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		err  bool
	}{
		{"#1F4E79", Color{0x1F, 0x4E, 0x79}, false},
		{"1f4e79", Color{0x1F, 0x4E, 0x79}, false},
		{"#FFF", Color{0xFF, 0xFF, 0xFF}, false},
		{"#12345", Color{}, true},
		{"nope", Color{}, true},
	}
	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{0x1F, 0x4E, 0x79}
	if c.Hex() != "1F4E79" {
		t.Fatalf("Hex() = %q, want 1F4E79", c.Hex())
	}
}

func TestRampLightens(t *testing.T) {
	base := Color{0x1F, 0x4E, 0x79}
	ramp := Ramp(base, 4)
	if len(ramp) != 4 {
		t.Fatalf("len = %d, want 4", len(ramp))
	}
	if ramp[0] != base {
		t.Fatalf("ramp[0] = %+v, want base %+v", ramp[0], base)
	}
	for i := 1; i < len(ramp); i++ {
		if ramp[i].R < ramp[i-1].R || ramp[i].G < ramp[i-1].G || ramp[i].B < ramp[i-1].B {
			t.Fatalf("ramp[%d] = %+v darker than ramp[%d] = %+v", i, ramp[i], i-1, ramp[i-1])
		}
	}
	if ramp[3] == (Color{255, 255, 255}) {
		t.Fatal("last ramp color reached pure white, series would vanish")
	}
}

func TestResolveStyleMap(t *testing.T) {
	s := Resolve(map[string]any{
		"font_name":  "Calibri",
		"font_size":  14,
		"bold":       true,
		"font_color": "#FFFFFF",
		"fill_color": "#1F4E79",
		"alignment":  "center",
	}, nil)
	if s.FontName != "Calibri" || s.FontSize != 14 {
		t.Fatalf("font = %q/%v", s.FontName, s.FontSize)
	}
	if !s.IsBold() || s.IsItalic() {
		t.Fatal("bold should be set, italic unset")
	}
	if s.Color == nil || s.Color.Hex() != "FFFFFF" {
		t.Fatalf("color = %v", s.Color)
	}
	if s.Fill == nil || s.Fill.Hex() != "1F4E79" {
		t.Fatalf("fill = %v", s.Fill)
	}
	if s.Align != AlignCenter {
		t.Fatalf("align = %q", s.Align)
	}
}

func TestResolveSkipsMalformed(t *testing.T) {
	s := Resolve(map[string]any{
		"font_size":  "big",
		"font_color": "#zzz",
		"bold":       true,
	}, nil)
	if s.FontSize != 0 || s.Color != nil {
		t.Fatalf("malformed values must stay unset: %+v", s)
	}
	if !s.IsBold() {
		t.Fatal("well-formed keys must survive malformed neighbors")
	}
}

func TestMergeLayering(t *testing.T) {
	base := Style{FontName: "Calibri", FontSize: 11, Bold: Flag(false)}
	over := Style{FontSize: 18, Bold: Flag(true), Align: AlignRight}
	got := Merge(base, over)
	if got.FontName != "Calibri" {
		t.Fatalf("FontName = %q, want inherited Calibri", got.FontName)
	}
	if got.FontSize != 18 || !got.IsBold() || got.Align != AlignRight {
		t.Fatalf("overlay fields lost: %+v", got)
	}
}
