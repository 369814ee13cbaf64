package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestChoiceListNumberKeyPicks(t *testing.T) {
	c := NewChoiceList([]string{"8", "4", "7"})

	c, cmd := c.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if cmd == nil {
		t.Fatal("expected a pick command")
	}
	msg, ok := cmd().(ChoiceMsg)
	if !ok {
		t.Fatalf("expected ChoiceMsg, got %T", cmd())
	}
	if msg.Index != 1 || c.Selected != 1 {
		t.Errorf("expected index 1 picked, got msg %d selected %d", msg.Index, c.Selected)
	}
}

func TestChoiceListIgnoresOutOfRangeNumber(t *testing.T) {
	c := NewChoiceList([]string{"8", "4", "7"})

	c, cmd := c.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if cmd != nil {
		t.Error("expected no command for a number past the last option")
	}
	if c.Selected != 0 {
		t.Errorf("expected selection unchanged, got %d", c.Selected)
	}
}

func TestChoiceListArrowsAndEnter(t *testing.T) {
	c := NewChoiceList([]string{"Acute", "Obtuse", "Right"})

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if c.Selected != 2 {
		t.Fatalf("expected selection clamped at 2, got %d", c.Selected)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyLeft})

	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected enter to pick")
	}
	if msg := cmd().(ChoiceMsg); msg.Index != 1 {
		t.Errorf("expected index 1, got %d", msg.Index)
	}
}

func TestChoiceListView(t *testing.T) {
	view := NewChoiceList([]string{"1/2", "2/3"}).View()
	for _, want := range []string{"1  1/2", "2  2/3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { ran = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { ran = "D"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("expected down to skip disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("expected selection to stay at the last item, got %d", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "D" {
		t.Errorf("expected action D to run, got %q", ran)
	}
}

func TestTimerBar(t *testing.T) {
	bar := NewTimerBar(30, 60, 40)
	if bar.Filled(20) != 10 {
		t.Errorf("expected half of 20 cells filled, got %d", bar.Filled(20))
	}
	if bar.Low() {
		t.Error("30s should not be low")
	}
	if !NewTimerBar(10, 60, 40).Low() {
		t.Error("10s should be low")
	}
	if NewTimerBar(0, 60, 40).Filled(20) != 0 {
		t.Error("expected empty bar at zero")
	}
	if !strings.Contains(bar.View(), "30s") {
		t.Errorf("expected seconds label in %q", bar.View())
	}
}

func TestAngleCanvasRight(t *testing.T) {
	const radius = 6
	lines := strings.Split(AngleCanvas(90, radius), "\n")
	if len(lines) != radius+1 {
		t.Fatalf("expected %d rows, got %d", radius+1, len(lines))
	}
	vertex := 2 * radius
	for y := 0; y < radius; y++ {
		if r := []rune(lines[y]); r[vertex] != '│' {
			t.Errorf("row %d: expected vertical ray at column %d, got %q", y, vertex, lines[y])
		}
	}
	if !strings.Contains(lines[radius-1], "┐") {
		t.Errorf("expected right-angle marker, got %q", lines[radius-1])
	}
	if !strings.HasPrefix(strings.TrimLeft(lines[radius], " "), "●─") {
		t.Errorf("expected vertex and base ray, got %q", lines[radius])
	}
}

func TestAngleCanvasAcuteAndObtuse(t *testing.T) {
	const radius = 6
	vertex := 2 * radius

	check := func(degrees float64, ray rune, rightOfVertex bool) {
		t.Helper()
		found := false
		for _, line := range strings.Split(AngleCanvas(degrees, radius), "\n") {
			for x, r := range []rune(line) {
				if r != ray {
					continue
				}
				found = true
				if rightOfVertex && x < vertex {
					t.Errorf("%v°: ray cell at column %d left of vertex", degrees, x)
				}
				if !rightOfVertex && x > vertex {
					t.Errorf("%v°: ray cell at column %d right of vertex", degrees, x)
				}
			}
		}
		if !found {
			t.Errorf("%v°: no %q cells drawn", degrees, ray)
		}
	}

	check(45, '/', true)
	check(135, '\\', false)
}
