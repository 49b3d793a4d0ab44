package state

import "fmt"

// PlayerID identifies a player within one session. IDs are derived from the
// seat position so that replaying the same roster always yields the same
// identifiers.
type PlayerID string

// PlayerIDNone is the unset player value.
const PlayerIDNone PlayerID = ""

func playerIDForSeat(seat int) PlayerID {
	return PlayerID(fmt.Sprintf("p%d", seat+1))
}

// Player couples immutable identity (id, name, seat) with a mutable status
// record. Status fields are written exclusively by log-entry application;
// there is no public setter path.
type Player struct {
	id   PlayerID
	name string
	seat int

	alive       bool
	role        Role
	revealed    bool
	sheriff     bool
	lover       PlayerID
	deathReason DeathReason
	deathTurn   int
	usedHeal    bool
	usedPoison  bool
	firedShot   bool
}

// ID returns the player's id.
func (p *Player) ID() PlayerID { return p.id }

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// Seat returns the player's fixed seating position, starting at 0.
func (p *Player) Seat() int { return p.seat }

// Alive reports whether the player is alive.
func (p *Player) Alive() bool { return p.alive }

// Role returns the player's known role, empty until identified or revealed.
func (p *Player) Role() Role { return p.role }

// Revealed reports whether the player's role has been publicly revealed.
func (p *Player) Revealed() bool { return p.revealed }

// Sheriff reports whether the player holds the sheriff badge.
func (p *Player) Sheriff() bool { return p.sheriff }

// Lover returns the id of the player's lover, if bound by Cupid.
func (p *Player) Lover() PlayerID { return p.lover }

// DeathReason returns why the player died; empty while alive.
func (p *Player) DeathReason() DeathReason { return p.deathReason }

// DeathTurn returns the turn the player died on; zero while alive.
func (p *Player) DeathTurn() int { return p.deathTurn }

// FiredShot reports whether this player has taken their revenge shot.
// Always false for players who never held the hunter card.
func (p *Player) FiredShot() bool { return p.firedShot }

// UsedPotion reports whether the player has spent the given potion.
func (p *Player) UsedPotion(kind PotionKind) bool {
	if kind == PotionHeal {
		return p.usedHeal
	}
	return p.usedPoison
}
