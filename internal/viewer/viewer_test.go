package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Footy-Sense/internal/game"
)

func TestCreateUnitAt(t *testing.T) {
	m, err := game.NewMatch(game.DefaultConfig(), game.WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	msg, err := createUnitAt(m, game.SideAway, game.RoleMidfielder, 10, 12)
	if err != nil {
		t.Fatalf("expected the unit to be placed, got %v", err)
	}
	if !strings.Contains(msg, "created at (10,12)") {
		t.Fatalf("unexpected status %q", msg)
	}
	units := m.Units()
	if len(units) != 1 || units[0].Side != game.SideAway || units[0].Role != game.RoleMidfielder {
		t.Fatalf("unexpected units %+v", units)
	}

	msg, err = createUnitAt(m, game.SideHome, game.RoleForward, 10, 12)
	if !errors.Is(err, game.ErrCellOccupied) || msg != "(10,12) is occupied" {
		t.Fatalf("expected an occupied cell, got %q %v", msg, err)
	}
	_, err = createUnitAt(m, game.Side(5), game.RoleForward, 11, 12)
	if !errors.Is(err, game.ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
	if len(m.Units()) != 1 {
		t.Fatalf("failed creates should not register units, got %d", len(m.Units()))
	}
}

func TestNextRoleCycles(t *testing.T) {
	r := game.RoleDefender
	seen := []game.Role{r}
	for i := 0; i < 3; i++ {
		r = nextRole(r)
		seen = append(seen, r)
	}
	want := []game.Role{game.RoleDefender, game.RoleMidfielder, game.RoleForward, game.RoleDefender}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
}
