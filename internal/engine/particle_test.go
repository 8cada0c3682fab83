package engine

import "testing"

func TestRGBAAsCSSHex(t *testing.T) {
	rgba := RGBA{Red: 255, Green: 0, Blue: 0, Alpha: 0}
	if got := rgba.AsCSSHex(); got != "#FF000000" {
		t.Fatalf("got %s", got)
	}

	rgba = RGBA{Red: 128, Green: 64, Blue: 192, Alpha: 192}
	if got := rgba.AsCSSHex(); got != "#8040C0C0" {
		t.Fatalf("got %s", got)
	}
}

func TestRGBAFromCSSHex(t *testing.T) {
	got, ok := RGBAFromCSSHex("#FF000000")
	if !ok || got != (RGBA{Red: 255, Green: 0, Blue: 0, Alpha: 0}) {
		t.Fatalf("got %v, ok=%v", got, ok)
	}

	got, ok = RGBAFromCSSHex("FF00A01B")
	if !ok || got != (RGBA{Red: 255, Green: 0, Blue: 160, Alpha: 27}) {
		t.Fatalf("got %v, ok=%v", got, ok)
	}

	got, ok = RGBAFromCSSHex("#06C2A0")
	if !ok || got != (RGBA{Red: 6, Green: 194, Blue: 160, Alpha: 255}) {
		t.Fatalf("got %v, ok=%v", got, ok)
	}

	got, ok = RGBAFromCSSHex("#ZZ0000")
	if !ok || got != (RGBA{Red: 0, Green: 0, Blue: 0, Alpha: 255}) {
		t.Fatalf("got %v, ok=%v", got, ok)
	}

	if _, ok := RGBAFromCSSHex("#ZZ0="); ok {
		t.Fatal("expected a 5-character string to be rejected")
	}
}
