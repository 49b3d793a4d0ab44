// Package i18n renders localized moderator text for engine instructions.
// The engine emits stable message keys plus arguments; this package owns
// every display string, so transports never hardcode prose.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bicheichane/millers-hollow/internal/game/flow"
	"github.com/bicheichane/millers-hollow/internal/game/protocol"
)

// Default is the locale used when a request names no other.
var Default = language.English

// Supported lists the locales with a full catalog, default first.
var Supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(Supported)

// announced marks keys whose text may be read aloud to the table. Every
// key gets a moderator-only direction; only these also get an
// announcement.
var announced = map[string]bool{
	flow.KeyDawnAnnounce: true,
	flow.KeyDebateOpen:   true,
	flow.KeyVoteCast:     true,
	flow.KeyGameOver:     true,
}

// Match resolves an Accept-Language value to a supported locale.
func Match(accept string) language.Tag {
	if accept == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil {
		return Default
	}
	_, index, _ := matcher.Match(tags...)
	return Supported[index]
}

// Localize fills the instruction's display strings from its message key,
// leaving the structured fields untouched.
func Localize(lang language.Tag, instr *protocol.Instruction) {
	if instr == nil || instr.Key == "" {
		return
	}
	p := message.NewPrinter(lang)
	instr.Direction = p.Sprintf(directionKey(instr.Key), instr.Args...)
	if announced[instr.Key] {
		instr.Announcement = p.Sprintf(announcementKey(instr.Key), instr.Args...)
	}
}

func directionKey(key string) string { return key + "|direction" }

func announcementKey(key string) string { return key + "|announcement" }
