// Package state holds the session aggregate: player identity and status, the
// append-only entry log, and the privileged writer interface through which
// log entries apply their consequences. Nothing outside entry application
// can change a player's status; every field in here is explainable by some
// entry in the log.
package state

// Role identifies a role card in play.
type Role string

const (
	// RoleVillager is a plain villager with no night action.
	RoleVillager Role = "villager"
	// RoleWerewolf devours one victim per night with the pack.
	RoleWerewolf Role = "werewolf"
	// RoleSeer inspects one player's card each night.
	RoleSeer Role = "seer"
	// RoleWitch holds one healing and one poison potion.
	RoleWitch Role = "witch"
	// RoleDefender protects one player per night, never twice in a row.
	RoleDefender Role = "defender"
	// RoleHunter fires a dying shot when eliminated.
	RoleHunter Role = "hunter"
	// RoleCupid binds two lovers on the first night.
	RoleCupid Role = "cupid"
)

// Roles lists every known role.
func Roles() []Role {
	return []Role{
		RoleVillager,
		RoleWerewolf,
		RoleSeer,
		RoleWitch,
		RoleDefender,
		RoleHunter,
		RoleCupid,
	}
}

// Valid reports whether the role is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Faction identifies a winning camp.
type Faction string

const (
	// FactionVillagers covers every non-werewolf role.
	FactionVillagers Faction = "villagers"
	// FactionWerewolves covers the wolf pack.
	FactionWerewolves Faction = "werewolves"
	// FactionLovers covers a surviving mixed-camp lover pair.
	FactionLovers Faction = "lovers"
)

// Faction returns the camp a role belongs to.
func (r Role) Faction() Faction {
	if r == RoleWerewolf {
		return FactionWerewolves
	}
	return FactionVillagers
}

// DeathReason records why a player died.
type DeathReason string

const (
	// DeathWerewolfAttack marks a night devouring.
	DeathWerewolfAttack DeathReason = "werewolf_attack"
	// DeathPoison marks the witch's poison potion.
	DeathPoison DeathReason = "poison"
	// DeathLynch marks a daytime vote elimination.
	DeathLynch DeathReason = "lynch"
	// DeathHunterShot marks the hunter's dying shot.
	DeathHunterShot DeathReason = "hunter_shot"
	// DeathHeartbreak marks a lover dying of grief.
	DeathHeartbreak DeathReason = "heartbreak"
)

// PotionKind identifies one of the witch's potions.
type PotionKind string

const (
	// PotionHeal cancels the night's werewolf attack.
	PotionHeal PotionKind = "heal"
	// PotionPoison kills one player during the night.
	PotionPoison PotionKind = "poison"
)
