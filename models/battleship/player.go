package battleship

const CamoSize = 4

type CamoArea struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (ca *CamoArea) Covers(c Coordinates) bool {
	if ca == nil {
		return false
	}
	return c.X >= ca.X && c.X < ca.X+ca.Width && c.Y >= ca.Y && c.Y < ca.Y+ca.Height
}

type TargetLock struct {
	Cells          []Coordinates `json:"cells"`
	TurnsRemaining int           `json:"turnsRemaining"`
}

type Player struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	IsAI         bool   `json:"isAI"`
	SessionToken string `json:"sessionToken,omitempty"`

	Grid  Grid            `json:"grid"`
	Ships []Ship          `json:"ships"`
	Shots map[string]Grid `json:"shots"`

	IsReady      bool `json:"isReady"`
	IsEliminated bool `json:"isEliminated"`
	Score        int  `json:"score"`

	SkillCooldowns map[ShipType]int `json:"skillCooldowns"`
	SkillUses      map[ShipType]int `json:"skillUses"`

	DecoyPositions      []Coordinates         `json:"decoyPositions"`
	ShieldedPositions   []Coordinates         `json:"shieldedPositions"`
	JammedPositions     []Coordinates         `json:"jammedPositions"`
	JamTurnsRemaining   int                   `json:"jamTurnsRemaining"`
	EscapeSkillUnlocked bool                  `json:"escapeSkillUnlocked"`
	ActionPoints        int                   `json:"actionPoints"`
	BonusAP             int                   `json:"bonusAP"`
	CamoArea            *CamoArea             `json:"camoArea,omitempty"`
	TargetLocks         map[string]TargetLock `json:"targetLocks"`
}

func (p *Player) Clone() Player {
	out := *p

	if p.Grid != nil {
		out.Grid = p.Grid.Clone()
	}
	if p.Ships != nil {
		out.Ships = make([]Ship, len(p.Ships))
		for i, s := range p.Ships {
			out.Ships[i] = s.Clone()
		}
	}
	if p.Shots != nil {
		out.Shots = make(map[string]Grid, len(p.Shots))
		for k, g := range p.Shots {
			out.Shots[k] = g.Clone()
		}
	}
	if p.SkillCooldowns != nil {
		out.SkillCooldowns = make(map[ShipType]int, len(p.SkillCooldowns))
		for k, v := range p.SkillCooldowns {
			out.SkillCooldowns[k] = v
		}
	}
	if p.SkillUses != nil {
		out.SkillUses = make(map[ShipType]int, len(p.SkillUses))
		for k, v := range p.SkillUses {
			out.SkillUses[k] = v
		}
	}
	if p.TargetLocks != nil {
		out.TargetLocks = make(map[string]TargetLock, len(p.TargetLocks))
		for k, v := range p.TargetLocks {
			out.TargetLocks[k] = TargetLock{
				Cells:          append([]Coordinates(nil), v.Cells...),
				TurnsRemaining: v.TurnsRemaining,
			}
		}
	}
	if p.CamoArea != nil {
		camo := *p.CamoArea
		out.CamoArea = &camo
	}

	out.DecoyPositions = append([]Coordinates(nil), p.DecoyPositions...)
	out.ShieldedPositions = append([]Coordinates(nil), p.ShieldedPositions...)
	out.JammedPositions = append([]Coordinates(nil), p.JammedPositions...)
	return out
}

// ShipByType returns the first ship of the given type, nil if the fleet
// does not carry one.
func (p *Player) ShipByType(shipType ShipType) *Ship {
	for i := range p.Ships {
		if p.Ships[i].Type == shipType {
			return &p.Ships[i]
		}
	}
	return nil
}

func (p *Player) ShipByName(name string) *Ship {
	for i := range p.Ships {
		if p.Ships[i].Name == name {
			return &p.Ships[i]
		}
	}
	return nil
}

func (p *Player) ShipAt(c Coordinates) *Ship {
	for i := range p.Ships {
		if p.Ships[i].Occupies(c) {
			return &p.Ships[i]
		}
	}
	return nil
}

// IsShipJammed reports whether any cell of the ship lies in the player's
// active jammed set.
func (p *Player) IsShipJammed(ship *Ship) bool {
	if ship == nil || p.JamTurnsRemaining <= 0 {
		return false
	}
	for _, pos := range ship.Positions {
		if containsCoordinates(p.JammedPositions, pos) {
			return true
		}
	}
	return false
}

func (p *Player) IsShielded(c Coordinates) bool {
	return containsCoordinates(p.ShieldedPositions, c)
}

func (p *Player) ShipHasShield(ship *Ship) bool {
	for _, pos := range ship.Positions {
		if p.IsShielded(pos) {
			return true
		}
	}
	return false
}

func (p *Player) HasDecoyAt(c Coordinates) bool {
	return containsCoordinates(p.DecoyPositions, c)
}

// HasLockOn reports whether the player holds an active target lock on
// the cell against the given opponent.
func (p *Player) HasLockOn(opponentId string, c Coordinates) bool {
	lock, prs := p.TargetLocks[opponentId]
	if !prs || lock.TurnsRemaining <= 0 {
		return false
	}
	return containsCoordinates(lock.Cells, c)
}

// ShotsAt returns the shots grid against the opponent, creating it when
// the player has not fired at them yet.
func (p *Player) ShotsAt(opponentId string, dims GridDimensions) Grid {
	if p.Shots == nil {
		p.Shots = make(map[string]Grid)
	}
	shots, prs := p.Shots[opponentId]
	if !prs {
		shots = NewGrid(dims.Rows, dims.Cols)
		p.Shots[opponentId] = shots
	}
	return shots
}

func (p *Player) AllShipsSunk() bool {
	if len(p.Ships) == 0 {
		return false
	}
	for _, s := range p.Ships {
		if !s.IsSunk {
			return false
		}
	}
	return true
}

func (p *Player) FleetCost() int {
	cost := 0
	for _, s := range p.Ships {
		cost += s.PointCost
	}
	return cost
}
