package battleship

import "testing"

func TestSummarize(t *testing.T) {
	rules := TacticalRules{}
	state := newPlayingGame(t, GameModeTactical)
	state.Player(testHostId).ActionPoints = 2

	next := mustShoot(t, rules, state, 5, 5)
	next = mustShoot(t, rules, next, 0, 2)

	stats := Summarize(next)
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 players\tgot: %d", len(stats))
	}
	host := stats[0]
	if host.PlayerId != testHostId || host.Shots != 2 || host.Hits != 1 {
		t.Fatalf("expected 2 shots and 1 hit\tgot: %+v", host)
	}
	if host.Accuracy != 50 {
		t.Fatalf("expected accuracy: 50\tgot: %f", host.Accuracy)
	}
	if stats[1].Shots != 0 || stats[1].Accuracy != 0 {
		t.Fatalf("expected no shots for the guest\tgot: %+v", stats[1])
	}
}

func TestSummarizeCamouflagedMothershipSink(t *testing.T) {
	rules := TacticalRules{}
	state := newPlayingGame(t, GameModeTactical)
	state.Player(testGuestId).CamoArea = &CamoArea{X: 0, Y: 0, Width: CamoSize, Height: CamoSize}

	next := mustShoot(t, rules, state, 0, 0)
	next.Player(testHostId).ActionPoints = 1
	next = mustShoot(t, rules, next, 1, 0)

	if next.Phase != PhaseGameOver {
		t.Fatalf("expected phase: %s\tgot: %s", PhaseGameOver, next.Phase)
	}

	stats := Summarize(next)
	host, guest := stats[0], stats[1]
	// the first hit stayed hidden, the sink did not
	if host.Shots != 2 || host.Hits != 1 || host.ShipsSunk != 1 {
		t.Fatalf("expected 2 shots, 1 hit and 1 sink\tgot: %+v", host)
	}
	if guest.ShipsLost != 1 {
		t.Fatalf("expected 1 ship lost\tgot: %d", guest.ShipsLost)
	}
}
