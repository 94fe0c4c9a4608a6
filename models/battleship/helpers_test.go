package battleship

import (
	"math/rand"
	"testing"
)

const (
	testHostId     = "host"
	testGuestId    = "guest"
	testHostToken  = "host-token"
	testGuestToken = "guest-token"
)

type shipAt struct {
	shipType   ShipType
	x, y       int
	horizontal bool
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// tacticalFleet lays every tactical ship out horizontally. The Mothership
// sits on (0,0)-(1,0) and row 3 is open water.
func tacticalFleet() []shipAt {
	return []shipAt{
		{ShipMothership, 0, 0, true},
		{ShipScoutship, 0, 2, true},
		{ShipRepairship, 0, 4, true},
		{ShipSupportship, 0, 6, true},
		{ShipShieldship, 0, 8, true},
		{ShipCommandship, 0, 10, true},
		{ShipRadarship, 6, 0, true},
		{ShipJamship, 6, 2, true},
		{ShipDecoyship, 6, 4, true},
		{ShipCamoship, 6, 6, true},
	}
}

func classicFleet() []shipAt {
	fleet := make([]shipAt, 0, len(ClassicShips))
	for i, sc := range ClassicShips {
		fleet = append(fleet, shipAt{sc.Type, 0, i * 2, true})
	}
	return fleet
}

func placeTestFleet(t *testing.T, rules Rules, p *Player, fleet []shipAt) {
	t.Helper()
	for _, s := range fleet {
		sc, prs := FindShipConfig(rules.ShipCatalog(), s.shipType)
		if !prs {
			t.Fatalf("unknown ship type: %s", s.shipType)
		}
		grid, ship, err := PlaceShip(p.Grid, sc.NewShip(), s.x, s.y, s.horizontal)
		if err != nil {
			t.Fatalf("failed to place %s: %s", s.shipType, err)
		}
		p.Grid = grid
		p.Ships = append(p.Ships, ship)
	}
}

// newPlayingGame seats two online humans with the same fleet layout and
// hands the first turn to the host.
func newPlayingGame(t *testing.T, mode GameMode) *GameState {
	t.Helper()

	state, grid, err := NewGameState("TEST01", mode, MapTypeStandard, OpponentOnline, 0, newTestRand())
	if err != nil {
		t.Fatalf("failed to create game: %s", err)
	}
	rules := RulesFor(mode)
	fleet := tacticalFleet()
	if mode == GameModeClassic {
		fleet = classicFleet()
	}

	host := rules.InitializePlayer(testHostId, "Host", false, grid)
	host.SessionToken = testHostToken
	placeTestFleet(t, rules, &host, fleet)
	host.IsReady = true

	guest := rules.InitializePlayer(testGuestId, "Guest", false, grid)
	guest.SessionToken = testGuestToken
	placeTestFleet(t, rules, &guest, fleet)
	guest.IsReady = true

	state.Players = []Player{host, guest}
	StartPlay(rules, state, testHostId)
	return state
}

func mustShoot(t *testing.T, rules Rules, state *GameState, x, y int) *GameState {
	t.Helper()
	next, err := rules.ProcessShot(state, state.Opponent(state.CurrentPlayerId).Id, x, y)
	if err != nil {
		t.Fatalf("shot at x: %d\ty: %d failed: %s", x, y, err)
	}
	return next
}

func mustSkill(t *testing.T, state *GameState, shipType ShipType, opts SkillOptions) *GameState {
	t.Helper()
	next, err := TacticalRules{}.ApplySkill(state, state.CurrentPlayerId, shipType, opts)
	if err != nil {
		t.Fatalf("%s skill failed: %s", shipType, err)
	}
	return next
}

func coords(xy ...int) []Coordinates {
	out := make([]Coordinates, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, NewCoordinates(xy[i], xy[i+1]))
	}
	return out
}
