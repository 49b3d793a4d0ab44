package roles

import (
	"github.com/bicheichane/millers-hollow/internal/game/hook"
	"github.com/bicheichane/millers-hollow/internal/game/phase"
)

// BuildRegistry wires every base-game listener. Night listeners follow
// the canonical wake order; death listeners follow rule precedence, with
// the lover bond resolved before the badge and the badge before the shot.
func BuildRegistry() (*hook.Registry, error) {
	r := hook.NewRegistry()

	night := []hook.Listener{Cupid{}, Defender{}, Werewolves{}, Witch{}, Seer{}}
	for _, l := range night {
		if err := r.Register(phase.HookNightAction, l); err != nil {
			return nil, err
		}
	}

	deaths := []hook.Listener{Lovers{}, SheriffSuccession{}, Hunter{}}
	for _, l := range deaths {
		if err := r.Register(phase.HookDeathResolution, l); err != nil {
			return nil, err
		}
	}
	return r, nil
}
