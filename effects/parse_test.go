package effects

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec    EffectSpec
		isValid bool
	}{
		{EffectSpec{Type: "solid", Color: "#FF00FF"}, true},
		{EffectSpec{Type: "Solid"}, true},
		{EffectSpec{Type: "gradient", From: "#0A3306", To: "#36FF1F"}, true},
		{EffectSpec{Type: "rainbow", Period: "5s", Spread: 180}, true},
		{EffectSpec{Type: "chase", Color: "#000FFF", Length: 3, Speed: 12}, true},
		{EffectSpec{Type: "blink", Period: "500ms"}, true},
		{EffectSpec{Type: "solid", Color: "magenta"}, false},
		{EffectSpec{Type: "rainbow", Period: "fast"}, false},
		{EffectSpec{Type: "blink", Period: "-1s"}, false},
		{EffectSpec{Type: "sparkle"}, false},
	}

	for _, test := range tests {
		effect, err := Parse(test.spec)
		if test.isValid {
			if err != nil {
				t.Errorf("%+v failed to parse %s", test.spec, err.Error())
				continue
			}
			if effect == nil {
				t.Errorf("%+v returned no effect", test.spec)
			}
			continue
		}
		if err == nil {
			t.Errorf("%+v was expected to fail", test.spec)
		}
	}
}

func TestParseName(t *testing.T) {
	effect, err := Parse(EffectSpec{Type: "solid"})
	if err != nil {
		t.Fatal(err.Error())
	}
	if effect.(*Solid).Name() != "solid" {
		t.Fatalf("expected the type to be used as the name, got %s", effect.(*Solid).Name())
	}

	effect, err = Parse(EffectSpec{Name: "warm", Type: "solid", Color: "#FFAA00"})
	if err != nil {
		t.Fatal(err.Error())
	}
	if effect.(*Solid).Name() != "warm" {
		t.Fatalf("expected name warm, got %s", effect.(*Solid).Name())
	}
}
