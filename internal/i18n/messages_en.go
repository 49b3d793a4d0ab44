package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bicheichane/millers-hollow/internal/game/flow"
	"github.com/bicheichane/millers-hollow/internal/game/roles"
)

func init() {
	lang := language.English

	message.SetString(lang, directionKey(flow.KeySetupConfirm),
		"Review the roster and the role cards in play, then confirm to start the game.")
	message.SetString(lang, directionKey(flow.KeyDawnAnnounce),
		"Wake the village. %d player(s) did not survive the night.")
	message.SetString(lang, announcementKey(flow.KeyDawnAnnounce),
		"The village wakes. This night claimed %d victim(s).")
	message.SetString(lang, directionKey(flow.KeyRevealRole),
		"Flip the card of %s and record their role.")
	message.SetString(lang, directionKey(flow.KeyDebateOpen),
		"Open the debate. Confirm when the village is ready to vote.")
	message.SetString(lang, announcementKey(flow.KeyDebateOpen),
		"The village debates who to accuse.")
	message.SetString(lang, directionKey(flow.KeyElectSheriff),
		"Hold the sheriff election and select the winner.")
	message.SetString(lang, directionKey(flow.KeyVoteCast),
		"Collect the votes. Select the eliminated player, or nobody on a tie.")
	message.SetString(lang, announcementKey(flow.KeyVoteCast),
		"The village votes.")
	message.SetString(lang, directionKey(flow.KeyGameOver),
		"The game is over. The %s won.")
	message.SetString(lang, announcementKey(flow.KeyGameOver),
		"The game is over. Victory goes to the %s.")

	message.SetString(lang, directionKey(roles.KeyWerewolvesIdentify),
		"Ask the %s holder(s) to wake and point out the %d player(s) holding the card.")
	message.SetString(lang, directionKey(roles.KeyWerewolvesChoose),
		"The werewolves wake. Select the victim they agree on.")
	message.SetString(lang, directionKey(roles.KeySeerIdentify),
		"Ask the %s holder(s) to wake and point out the %d player(s) holding the card.")
	message.SetString(lang, directionKey(roles.KeySeerChoose),
		"The seer wakes. Select the player whose card she inspects.")
	message.SetString(lang, directionKey(roles.KeySeerReveal),
		"Show the card of %s to the seer, then confirm.")
	message.SetString(lang, directionKey(roles.KeyDefenderIdentify),
		"Ask the %s holder(s) to wake and point out the %d player(s) holding the card.")
	message.SetString(lang, directionKey(roles.KeyDefenderChoose),
		"The defender wakes. Select the player under protection tonight.")
	message.SetString(lang, directionKey(roles.KeyWitchIdentify),
		"Ask the %s holder(s) to wake and point out the %d player(s) holding the card.")
	message.SetString(lang, directionKey(roles.KeyWitchHeal),
		"Show the witch that %s was attacked. Confirm if she spends the healing potion.")
	message.SetString(lang, directionKey(roles.KeyWitchPoison),
		"Ask the witch if she uses the poison. Select the target, or nobody.")
	message.SetString(lang, directionKey(roles.KeyCupidIdentify),
		"Ask the %s holder(s) to wake and point out the %d player(s) holding the card.")
	message.SetString(lang, directionKey(roles.KeyCupidChoose),
		"Cupid wakes. Select the two players bound as lovers.")
	message.SetString(lang, directionKey(roles.KeyLoversHeartbreak),
		"%s dies of heartbreak alongside their lover.")
	message.SetString(lang, directionKey(roles.KeySheriffSuccession),
		"Sheriff %s has died. Ask them to name a successor and select the choice.")
	message.SetString(lang, directionKey(roles.KeyHunterShot),
		"Hunter %s fires a last shot. Select the target.")
}
