package game

import "testing"

func TestBall_StartsAtCentre(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	if b.Mode() != BallResting || b.Status() != BallLive {
		t.Fatalf("new ball should be resting and live, got %s/%s", b.Mode(), b.Status())
	}
	if b.Position() != (Point{20, 15}) {
		t.Fatalf("expected centre (20,15), got %v", b.Position())
	}
	if idx, ok := b.RestingIndex(); !ok || idx != g.Index(20, 15) {
		t.Fatalf("resting index mismatch: %d %v", idx, ok)
	}
}

func TestBall_PickUpAndDrop(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleMidfielder, SideHome)
	g.Place(u, 7, 9)

	b.PickUp(u)
	if b.Mode() != BallCarried || b.Carrier() != u {
		t.Fatal("pick up should make the unit the carrier")
	}
	if _, ok := b.RestingIndex(); ok {
		t.Fatal("a carried ball has no resting index")
	}
	if b.Position() != u.Pos() {
		t.Fatalf("carried ball should follow the carrier, got %v", b.Position())
	}

	other := newUnit("b", RoleMidfielder, SideAway)
	g.Place(other, 8, 9)
	b.PickUp(other)
	if b.Carrier() != u {
		t.Fatal("pick up of a carried ball should be a no-op")
	}

	b.Drop()
	if b.Mode() != BallResting || b.Carrier() != nil || b.Position() != (Point{7, 9}) {
		t.Fatalf("drop should rest the ball on the carrier's cell, got %s %v", b.Mode(), b.Position())
	}
}

func TestBall_PickUpDeadIsNoop(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	b.MarkDead()
	b.PickUp(newUnit("a", RoleMidfielder, SideHome))
	if b.Carrier() != nil || b.Mode() != BallResting {
		t.Fatal("a dead ball cannot be picked up")
	}
	b.SetLive()
	if b.Status() != BallLive {
		t.Fatal("SetLive should revive a dead ball")
	}
}

func TestBall_KickFlightLands(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleMidfielder, SideHome)
	g.Place(u, 2, 15)
	b.PickUp(u)

	b.KickTo(10, 15, 5)
	if b.Mode() != BallAirborne || b.Status() != BallInFlight || b.Carrier() != nil {
		t.Fatalf("kick should launch the ball, got %s/%s", b.Mode(), b.Status())
	}
	p, ok := b.Flight()
	if !ok || p.VX != 1.6 || p.VY != 0 || p.Duration != 5 {
		t.Fatalf("unexpected projectile %+v", p)
	}
	for i := 0; i < 4; i++ {
		b.Update(g)
		if b.Mode() != BallAirborne {
			t.Fatalf("ball landed early after %d updates", i+1)
		}
	}
	b.Update(g)
	if b.Mode() != BallResting || b.Status() != BallLive {
		t.Fatalf("ball should land live after 5 updates, got %s/%s", b.Mode(), b.Status())
	}
	if b.Position() != (Point{10, 15}) {
		t.Fatalf("expected landing at (10,15), got %v", b.Position())
	}
}

func TestBall_KickDefaultsDuration(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleMidfielder, SideHome)
	g.Place(u, 2, 15)
	b.PickUp(u)
	b.KickTo(12, 15, 0)
	p, _ := b.Flight()
	if p.Duration != DefaultKickTicks {
		t.Fatalf("expected default duration %d, got %d", DefaultKickTicks, p.Duration)
	}
}

func TestBall_KickWithoutCarrierIsNoop(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	b.KickTo(5, 5, 3)
	if b.Mode() != BallResting {
		t.Fatalf("kick from rest should be ignored, got %s", b.Mode())
	}
}

func TestBall_LandingClampedOntoGrid(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleForward, SideHome)
	g.Place(u, 35, 15)
	b.PickUp(u)
	b.KickTo(50, -4, 2)
	b.Update(g)
	b.Update(g)
	if b.Position() != (Point{39, 0}) {
		t.Fatalf("landing should clamp to (39,0), got %v", b.Position())
	}
}

func TestBall_MarkDeadDropsCarrier(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleForward, SideHome)
	g.Place(u, 38, 15)
	b.PickUp(u)
	b.MarkDead()
	if b.Carrier() != nil || b.Status() != BallDead || b.Position() != (Point{38, 15}) {
		t.Fatalf("dead ball should rest at the carrier's cell with no carrier, got %v %s", b.Position(), b.Status())
	}
	b.Update(g)
	if b.Carrier() != nil {
		t.Fatal("a dead ball should not be picked up by Update")
	}
}

func TestBall_UpdatePicksUpOccupant(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleForward, SideHome)
	g.Place(u, 20, 15)
	b.Update(g)
	if b.Carrier() != u {
		t.Fatal("a live resting ball should go to the unit on its cell")
	}
}

func TestBall_ResetClearsState(t *testing.T) {
	g := NewGrid(DefaultConfig())
	b := NewBall(g)
	u := newUnit("a", RoleForward, SideHome)
	g.Place(u, 2, 2)
	b.PickUp(u)
	b.KickTo(9, 9, 3)
	b.MarkDead()
	b.Reset(g)
	if b.Mode() != BallResting || b.Status() != BallLive || b.Position() != (Point{20, 15}) {
		t.Fatalf("reset should return a live ball to the centre, got %s/%s %v", b.Mode(), b.Status(), b.Position())
	}
	if _, ok := b.Flight(); ok {
		t.Fatal("reset should clear the projectile")
	}
}
