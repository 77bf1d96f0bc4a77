package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

type fakeController struct {
	restitution float64
	count       int
	respawns    int
	paused      bool
	steps       int
	showFPS     bool
	saveErr     error
	saves       int
}

func (f *fakeController) SetRestitution(e float64) float64 {
	f.restitution = min(max(e, 0), 1)
	return f.restitution
}

func (f *fakeController) SetCount(n int) int {
	f.count = min(max(n, 1), 100)
	return f.count
}

func (f *fakeController) Respawn()          { f.respawns++ }
func (f *fakeController) TogglePause() bool { f.paused = !f.paused; return f.paused }
func (f *fakeController) StepOnce()         { f.steps++ }
func (f *fakeController) SetShowFPS(s bool) { f.showFPS = s }
func (f *fakeController) SaveConfig() error { f.saves++; return f.saveErr }

type lines []string

func (l *lines) Logf(format string, args ...any) { *l = append(*l, fmt.Sprintf(format, args...)) }

func newSim() (*Registry, *fakeController, *lines) {
	reg := NewRegistry()
	c := &fakeController{restitution: 1, count: 50}
	log := &lines{}
	RegisterSim(reg, c, log)
	return reg, c, log
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want []string
		ok   bool
	}{
		{line: "e -value 0.5", want: []string{"e", "-value", "0.5"}, ok: true},
		{line: "cmd count -n 3", want: []string{"count", "-n", "3"}, ok: true},
		{line: "   respawn  ", want: []string{"respawn"}, ok: true},
		{line: "cmd", ok: false},
		{line: "", ok: false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.line)
		if ok != tt.ok || !slices.Equal(got, tt.want) {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRestitutionCommand(t *testing.T) {
	reg, c, log := newSim()
	if err := reg.ExecuteLine("e -value 0.5"); err != nil {
		t.Fatalf("e: %v", err)
	}
	if c.restitution != 0.5 {
		t.Fatalf("restitution = %g, want 0.5", c.restitution)
	}
	if err := reg.ExecuteLine("e -value 3"); err != nil {
		t.Fatalf("e: %v", err)
	}
	if got := (*log)[len(*log)-1]; got != "elasticity coefficient = 1.0" {
		t.Fatalf("feedback = %q", got)
	}
	if err := reg.ExecuteLine("e"); err == nil {
		t.Fatalf("expected error without -value")
	}
	if err := reg.ExecuteLine("e -value abc"); err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("err = %v, want usage error", err)
	}
}

func TestCountAndRespawn(t *testing.T) {
	reg, c, _ := newSim()
	if err := reg.ExecuteLine("count -n 40"); err != nil {
		t.Fatalf("count: %v", err)
	}
	if err := reg.ExecuteLine("respawn"); err != nil {
		t.Fatalf("respawn: %v", err)
	}
	if c.count != 40 || c.respawns != 1 {
		t.Fatalf("count=%d respawns=%d, want 40 and 1", c.count, c.respawns)
	}
	if err := reg.ExecuteLine("count"); err == nil {
		t.Fatalf("expected error without -n")
	}
}

func TestPauseAndStep(t *testing.T) {
	reg, c, log := newSim()
	_ = reg.ExecuteLine("pause")
	_ = reg.ExecuteLine("step")
	_ = reg.ExecuteLine("step")
	if !c.paused || c.steps != 2 {
		t.Fatalf("paused=%v steps=%d", c.paused, c.steps)
	}
	_ = reg.ExecuteLine("pause")
	if c.paused || (*log)[len(*log)-1] != "resumed" {
		t.Fatalf("paused=%v log=%q", c.paused, *log)
	}
}

func TestFPSFlagsResetBetweenCalls(t *testing.T) {
	reg, c, _ := newSim()
	if err := reg.ExecuteLine("fps --show"); err != nil || !c.showFPS {
		t.Fatalf("fps --show: err=%v show=%v", err, c.showFPS)
	}
	if err := reg.ExecuteLine("fps --hide"); err != nil || c.showFPS {
		t.Fatalf("fps --hide: err=%v show=%v", err, c.showFPS)
	}
	if err := reg.ExecuteLine("fps"); err == nil {
		t.Fatalf("expected error for bare fps")
	}
}

func TestSaveWrapsError(t *testing.T) {
	reg, c, _ := newSim()
	c.saveErr = errors.New("disk full")
	err := reg.ExecuteLine("save")
	if !errors.Is(err, c.saveErr) {
		t.Fatalf("err = %v, want wrapped disk full", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	reg, _, _ := newSim()
	if err := reg.ExecuteLine("warp 9"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("err = %v", err)
	}
	if err := reg.ExecuteLine("   "); err != nil {
		t.Fatalf("blank line: %v", err)
	}
}

func TestHelpListsCommands(t *testing.T) {
	reg, _, log := newSim()
	if err := reg.ExecuteLine("help"); err != nil {
		t.Fatalf("help: %v", err)
	}
	if len(*log) != len(reg.Names()) {
		t.Fatalf("help printed %d lines for %d commands", len(*log), len(reg.Names()))
	}
}
