package battleship

import (
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

func TestCheckSkill(t *testing.T) {
	tests := []struct {
		name     string
		shipType ShipType
		prep     func(p *Player)
		want     error
	}{
		{name: "ready", shipType: ShipRadarship},
		{name: "not enough action points", shipType: ShipRadarship, prep: func(p *Player) {
			p.ActionPoints = 1
		}, want: cerr.ErrNotEnoughActionPoints(1, SkillCost)},
		{name: "passive", shipType: ShipSupportship, want: cerr.ErrSkillPassive(string(ShipSupportship))},
		{name: "unknown", shipType: ShipCarrier, want: cerr.ErrUnknownSkill(string(ShipCarrier))},
		{name: "not in fleet", shipType: ShipRadarship, prep: func(p *Player) {
			p.Ships = p.Ships[:1]
		}, want: cerr.ErrShipNotInFleet(string(ShipRadarship))},
		{name: "sunk", shipType: ShipRadarship, prep: func(p *Player) {
			p.ShipByType(ShipRadarship).IsSunk = true
		}, want: cerr.ErrShipSunk("Radarship")},
		{name: "damaged camoship", shipType: ShipCamoship, prep: func(p *Player) {
			p.ShipByType(ShipCamoship).IsDamaged = true
		}, want: cerr.ErrShipDamaged("Camoship")},
		{name: "damaged radarship still works", shipType: ShipRadarship, prep: func(p *Player) {
			p.ShipByType(ShipRadarship).IsDamaged = true
		}},
		{name: "jammed", shipType: ShipRadarship, prep: func(p *Player) {
			p.JammedPositions = coords(6, 0)
			p.JamTurnsRemaining = 1
		}, want: cerr.ErrShipJammed("Radarship")},
		{name: "cooldown", shipType: ShipRadarship, prep: func(p *Player) {
			p.SkillCooldowns[ShipRadarship] = 2
		}, want: cerr.ErrSkillOnCooldown(string(ShipRadarship), 2)},
		{name: "no uses left", shipType: ShipDecoyship, prep: func(p *Player) {
			p.SkillUses[ShipDecoyship] = 0
		}, want: cerr.ErrSkillNoUsesLeft(string(ShipDecoyship))},
		{name: "mothership intact", shipType: ShipMothership, want: cerr.ErrMothershipNotDamaged()},
		{name: "escape locked", shipType: ShipMothership, prep: func(p *Player) {
			p.ShipByType(ShipMothership).IsDamaged = true
		}, want: cerr.ErrEscapeLocked()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := newPlayingGame(t, GameModeTactical)
			p := state.Player(testHostId)
			if test.prep != nil {
				test.prep(p)
			}

			err := CheckSkill(p, test.shipType)
			if test.want == nil {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, test.want.Error())
		})
	}
}

func TestRejectedSkillKeepsState(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)

	next, err := TacticalRules{}.ApplySkill(state, testGuestId, ShipRadarship, SkillOptions{Targets: coords(0, 0, 1, 1, 2, 2, 3, 3)})
	require.EqualError(t, err, cerr.ErrNotPlayersTurn(testGuestId).Error())
	require.Same(t, state, next)
}

func TestRepairSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)
	host := state.Player(testHostId)
	host.Grid[4][0] = CellHit
	host.ShipByType(ShipRepairship).IsDamaged = true
	state.recordHit(testHostId, NewCoordinates(0, 4))
	guestShots := state.Player(testGuestId).ShotsAt(testHostId, state.GridDimensions)
	guestShots[4][0] = CellHit

	_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipRepairship, SkillOptions{X: 5, Y: 5})
	require.EqualError(t, err, cerr.ErrRepairTargetNotHit(5, 5).Error())

	next := mustSkill(t, state, ShipRepairship, SkillOptions{X: 0, Y: 4})

	host = next.Player(testHostId)
	ship := host.ShipByType(ShipRepairship)
	require.Equal(t, CellShip, host.Grid[4][0])
	require.False(t, ship.IsDamaged)
	require.True(t, ship.HasBeenRepaired)
	require.Equal(t, 0, host.ActionPoints)
	require.Equal(t, SkillCooldowns[ShipRepairship], host.SkillCooldowns[ShipRepairship])
	require.Equal(t, CellEmpty, next.Player(testGuestId).Shots[testHostId][4][0])
	_, prs := next.HitTurn(testHostId, NewCoordinates(0, 4))
	require.False(t, prs)
	require.Equal(t, LogSkillUsed, next.Log[0].Result)

	// one repair per ship
	host.Grid[4][1] = CellHit
	host.ShipByType(ShipRepairship).IsDamaged = true
	host.ActionPoints = SkillCost
	host.SkillCooldowns[ShipRepairship] = 0
	_, err = TacticalRules{}.ApplySkill(next, testHostId, ShipRepairship, SkillOptions{X: 1, Y: 4})
	require.EqualError(t, err, cerr.ErrShipAlreadyRepaired("Repairship").Error())
}

func TestRadarSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)
	state.Player(testGuestId).Grid[3][3] = CellAsteroid

	_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipRadarship, SkillOptions{Targets: coords(0, 0, 1, 1, 2, 2)})
	require.EqualError(t, err, cerr.ErrInvalidTargetCount(multiTargetCount, 3).Error())
	_, err = TacticalRules{}.ApplySkill(state, testHostId, ShipRadarship, SkillOptions{Targets: coords(0, 0, 1, 1, 2, 2, 1, 1)})
	require.EqualError(t, err, cerr.ErrDuplicateTarget(1, 1).Error())

	next := mustSkill(t, state, ShipRadarship, SkillOptions{Targets: coords(0, 0, 5, 5, 6, 0, 3, 3)})

	require.NotNil(t, next.RadarScanResult)
	require.Equal(t, testHostId, next.RadarScanResult.PlayerId)
	want := []Cell{CellRadarContact, CellEmpty, CellRadarContact, CellAsteroid}
	for i, contact := range next.RadarScanResult.Results {
		require.Equal(t, want[i], contact.State, "contact %d", i)
	}
	shots := next.Player(testHostId).Shots[testGuestId]
	require.Equal(t, CellRadarContact, shots[0][0])
	require.Equal(t, CellEmpty, shots[5][5])

	// radar contacts can still be fired at
	next.Player(testHostId).ActionPoints = 1
	shot := mustShoot(t, TacticalRules{}, next, 6, 0)
	require.Equal(t, CellHit, shot.Player(testHostId).Shots[testGuestId][0][6])
}

func TestJamSkillLastsOneTurn(t *testing.T) {
	rules := TacticalRules{}
	state := newPlayingGame(t, GameModeTactical)

	jammed := mustSkill(t, state, ShipJamship, SkillOptions{Targets: coords(6, 0, 7, 0, 8, 0, 9, 0)})
	guest := jammed.Player(testGuestId)
	require.Equal(t, 1, guest.JamTurnsRemaining)
	require.NotNil(t, jammed.JammedArea)
	require.Equal(t, testGuestId, jammed.JammedArea.PlayerId)

	handedOver, err := rules.AdvanceTurn(jammed)
	require.NoError(t, err)
	require.Equal(t, SkillCooldowns[ShipJamship]-1, handedOver.Player(testHostId).SkillCooldowns[ShipJamship])

	guestTurn, err := ContinueTurn(handedOver, testGuestId)
	require.NoError(t, err)
	require.EqualError(t, CheckSkill(guestTurn.Player(testGuestId), ShipRadarship), cerr.ErrShipJammed("Radarship").Error())
	require.NoError(t, CheckSkill(guestTurn.Player(testGuestId), ShipRepairship))

	afterGuest, err := rules.AdvanceTurn(guestTurn)
	require.NoError(t, err)
	guest = afterGuest.Player(testGuestId)
	require.Equal(t, 0, guest.JamTurnsRemaining)
	require.Empty(t, guest.JammedPositions)
	require.Nil(t, afterGuest.JammedArea)
}

func TestDecoySkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)

	_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipDecoyship, SkillOptions{X: 0, Y: 0})
	require.EqualError(t, err, cerr.ErrDecoyNotOnEmptyWater(0, 0).Error())

	next := mustSkill(t, state, ShipDecoyship, SkillOptions{X: 5, Y: 5})
	host := next.Player(testHostId)
	require.True(t, host.HasDecoyAt(NewCoordinates(5, 5)))
	require.Equal(t, maxDecoyUses-1, host.SkillUses[ShipDecoyship])
	require.Equal(t, CellEmpty, host.Grid[5][5])
}

func TestCamoSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)

	_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipCamoship, SkillOptions{X: 9, Y: 9})
	require.EqualError(t, err, cerr.ErrCamoOutOfBounds(9, 9).Error())

	next := mustSkill(t, state, ShipCamoship, SkillOptions{X: 8, Y: 8})
	host := next.Player(testHostId)
	require.Equal(t, &CamoArea{X: 8, Y: 8, Width: CamoSize, Height: CamoSize}, host.CamoArea)
	require.Equal(t, 0, host.SkillUses[ShipCamoship])

	host.ActionPoints = SkillCost
	host.SkillUses[ShipCamoship] = 1
	_, err = TacticalRules{}.ApplySkill(next, testHostId, ShipCamoship, SkillOptions{X: 0, Y: 0})
	require.EqualError(t, err, cerr.ErrCamoAlreadyDeployed().Error())
}

func TestTargetLockSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)

	next := mustSkill(t, state, ShipScoutship, SkillOptions{Targets: coords(0, 0, 1, 0, 2, 0, 3, 0)})
	lock := next.Player(testHostId).TargetLocks[testGuestId]
	require.Equal(t, targetLockTurns, lock.TurnsRemaining)
	require.True(t, next.Player(testHostId).HasLockOn(testGuestId, NewCoordinates(1, 0)))
	require.False(t, next.Player(testHostId).HasLockOn(testGuestId, NewCoordinates(4, 0)))

	advanced, err := TacticalRules{}.AdvanceTurn(next)
	require.NoError(t, err)
	require.Equal(t, targetLockTurns-1, advanced.Player(testHostId).TargetLocks[testGuestId].TurnsRemaining)
}

func TestShieldSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)
	host := state.Player(testHostId)
	host.Grid[3][5] = CellAsteroid
	host.Grid[4][2] = CellHit

	rejected := []struct {
		x, y int
		want error
	}{
		{5, 3, cerr.ErrShieldOnAsteroid(5, 3)},
		{2, 4, cerr.ErrShieldInvalidCell(2, 4)},
		{12, 0, cerr.ErrXorYOutOfGridBound(12, 0)},
	}
	for _, r := range rejected {
		_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipShieldship, SkillOptions{X: r.x, Y: r.y})
		require.EqualError(t, err, r.want.Error())
	}

	next := mustSkill(t, state, ShipShieldship, SkillOptions{X: 0, Y: 4})
	require.True(t, next.Player(testHostId).IsShielded(NewCoordinates(0, 4)))
	require.Equal(t, SkillCooldowns[ShipShieldship], next.Player(testHostId).SkillCooldowns[ShipShieldship])

	host = next.Player(testHostId)
	host.ActionPoints = SkillCost
	host.SkillCooldowns[ShipShieldship] = 0

	_, err := TacticalRules{}.ApplySkill(next, testHostId, ShipShieldship, SkillOptions{X: 0, Y: 4})
	require.EqualError(t, err, cerr.ErrAlreadyShielded(0, 4).Error())
	_, err = TacticalRules{}.ApplySkill(next, testHostId, ShipShieldship, SkillOptions{X: 1, Y: 4})
	require.EqualError(t, err, cerr.ErrShipAlreadyShielded("Repairship").Error())

	// bluff shields go on open water
	bluff := mustSkill(t, next, ShipShieldship, SkillOptions{X: 3, Y: 3})
	require.True(t, bluff.Player(testHostId).IsShielded(NewCoordinates(3, 3)))
}

func TestRelocationSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)
	state.Player(testHostId).ShieldedPositions = coords(1, 2)
	guestShots := state.Player(testGuestId).ShotsAt(testHostId, state.GridDimensions)
	guestShots[2][1] = CellRadarContact

	_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipCommandship, SkillOptions{X: 3, Y: 3, IsHorizontal: true})
	require.EqualError(t, err, cerr.ErrNoShipSelected().Error())
	_, err = TacticalRules{}.ApplySkill(state, testHostId, ShipCommandship, SkillOptions{X: 0, Y: 0, IsHorizontal: true, ShipToMove: "Scoutship"})
	require.EqualError(t, err, cerr.ErrCannotPlaceShip("Scoutship", 0, 0).Error())

	next := mustSkill(t, state, ShipCommandship, SkillOptions{X: 3, Y: 3, IsHorizontal: true, ShipToMove: "Scoutship"})

	host := next.Player(testHostId)
	scout := host.ShipByType(ShipScoutship)
	require.Equal(t, coords(3, 3, 4, 3, 5, 3), scout.Positions)
	require.True(t, scout.HasBeenRelocated)
	for x := 0; x < 3; x++ {
		require.Equal(t, CellEmpty, host.Grid[2][x])
		require.Equal(t, CellShip, host.Grid[3][x+3])
	}
	require.Equal(t, coords(4, 3), host.ShieldedPositions)
	require.Equal(t, CellEmpty, next.Player(testGuestId).Shots[testHostId][2][1])

	host.ActionPoints = SkillCost
	host.SkillCooldowns[ShipCommandship] = 0
	_, err = TacticalRules{}.ApplySkill(next, testHostId, ShipCommandship, SkillOptions{X: 0, Y: 2, IsHorizontal: true, ShipToMove: "Scoutship"})
	require.EqualError(t, err, cerr.ErrShipAlreadyRelocated("Scoutship").Error())
}

func TestRelocationOverMissesAndAsteroids(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)
	host := state.Player(testHostId)
	host.Grid[5][7] = CellMiss
	host.Grid[5][8] = CellAsteroid
	host.DecoyPositions = coords(3, 8)
	host.Grid[8][3] = CellDecoy

	_, err := TacticalRules{}.ApplySkill(state, testHostId, ShipCommandship, SkillOptions{X: 3, Y: 8, IsHorizontal: true, ShipToMove: "Scoutship"})
	require.EqualError(t, err, cerr.ErrCannotPlaceShip("Scoutship", 3, 8).Error())

	next := mustSkill(t, state, ShipCommandship, SkillOptions{X: 7, Y: 5, IsHorizontal: true, ShipToMove: "Scoutship"})
	moved := next.Player(testHostId)
	require.Equal(t, coords(7, 5, 8, 5, 9, 5), moved.ShipByType(ShipScoutship).Positions)
	for x := 7; x < 10; x++ {
		require.Equal(t, CellShip, moved.Grid[5][x])
	}
}

func TestEscapeSkill(t *testing.T) {
	state := newPlayingGame(t, GameModeTactical)
	host := state.Player(testHostId)
	host.Grid[0][0] = CellHit
	host.ShipByType(ShipMothership).IsDamaged = true
	host.EscapeSkillUnlocked = true
	state.recordHit(testHostId, NewCoordinates(0, 0))

	next := mustSkill(t, state, ShipMothership, SkillOptions{X: 3, Y: 3, IsHorizontal: true})

	host = next.Player(testHostId)
	mothership := host.ShipByType(ShipMothership)
	require.Equal(t, coords(3, 3, 4, 3), mothership.Positions)
	require.False(t, mothership.IsDamaged)
	require.Equal(t, CellEmpty, host.Grid[0][0])
	require.Equal(t, CellEmpty, host.Grid[0][1])
	require.Equal(t, CellShip, host.Grid[3][3])
	require.Equal(t, 0, host.SkillUses[ShipMothership])
	_, prs := next.HitTurn(testHostId, NewCoordinates(0, 0))
	require.False(t, prs)
}
