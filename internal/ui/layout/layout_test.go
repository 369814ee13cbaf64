package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("expected short terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}

func TestRenderHeaderShowsPlayer(t *testing.T) {
	out := RenderHeader("Game", Player{Name: "Ann", HighScore: 12}, 80)
	for _, want := range []string{"MathDash", "Game", "Ann", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHeaderWithoutPlayer(t *testing.T) {
	out := RenderHeader("Login", Player{}, 80)
	if strings.Contains(out, "best") {
		t.Errorf("expected no player section:\n%s", out)
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 80)
	if !strings.Contains(out, "Enter") || !strings.Contains(out, "Select") {
		t.Errorf("footer missing hint:\n%s", out)
	}
}
