package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bicheichane/millers-hollow/internal/game/flow"
	"github.com/bicheichane/millers-hollow/internal/game/roles"
)

func init() {
	lang := language.French

	message.SetString(lang, directionKey(flow.KeySetupConfirm),
		"Vérifiez la liste des joueurs et les cartes en jeu, puis confirmez pour commencer.")
	message.SetString(lang, directionKey(flow.KeyDawnAnnounce),
		"Réveillez le village. %d joueur(s) n'ont pas survécu à la nuit.")
	message.SetString(lang, announcementKey(flow.KeyDawnAnnounce),
		"Le village se réveille. Cette nuit a fait %d victime(s).")
	message.SetString(lang, directionKey(flow.KeyRevealRole),
		"Retournez la carte de %s et notez son rôle.")
	message.SetString(lang, directionKey(flow.KeyDebateOpen),
		"Ouvrez le débat. Confirmez quand le village est prêt à voter.")
	message.SetString(lang, announcementKey(flow.KeyDebateOpen),
		"Le village débat pour désigner un accusé.")
	message.SetString(lang, directionKey(flow.KeyElectSheriff),
		"Organisez l'élection du capitaine et sélectionnez le vainqueur.")
	message.SetString(lang, directionKey(flow.KeyVoteCast),
		"Recueillez les votes. Sélectionnez le joueur éliminé, ou personne en cas d'égalité.")
	message.SetString(lang, announcementKey(flow.KeyVoteCast),
		"Le village vote.")
	message.SetString(lang, directionKey(flow.KeyGameOver),
		"La partie est terminée. Victoire : %s.")
	message.SetString(lang, announcementKey(flow.KeyGameOver),
		"La partie est terminée. La victoire revient au camp %s.")

	message.SetString(lang, directionKey(roles.KeyWerewolvesIdentify),
		"Demandez au(x) porteur(s) de la carte %s de se réveiller et désignez %d joueur(s).")
	message.SetString(lang, directionKey(roles.KeyWerewolvesChoose),
		"Les loups-garous se réveillent. Sélectionnez la victime choisie.")
	message.SetString(lang, directionKey(roles.KeySeerIdentify),
		"Demandez au(x) porteur(s) de la carte %s de se réveiller et désignez %d joueur(s).")
	message.SetString(lang, directionKey(roles.KeySeerChoose),
		"La voyante se réveille. Sélectionnez le joueur dont elle inspecte la carte.")
	message.SetString(lang, directionKey(roles.KeySeerReveal),
		"Montrez la carte de %s à la voyante, puis confirmez.")
	message.SetString(lang, directionKey(roles.KeyDefenderIdentify),
		"Demandez au(x) porteur(s) de la carte %s de se réveiller et désignez %d joueur(s).")
	message.SetString(lang, directionKey(roles.KeyDefenderChoose),
		"Le salvateur se réveille. Sélectionnez le joueur protégé cette nuit.")
	message.SetString(lang, directionKey(roles.KeyWitchIdentify),
		"Demandez au(x) porteur(s) de la carte %s de se réveiller et désignez %d joueur(s).")
	message.SetString(lang, directionKey(roles.KeyWitchHeal),
		"Montrez à la sorcière que %s a été attaqué. Confirmez si elle utilise la potion de vie.")
	message.SetString(lang, directionKey(roles.KeyWitchPoison),
		"Demandez à la sorcière si elle utilise le poison. Sélectionnez la cible, ou personne.")
	message.SetString(lang, directionKey(roles.KeyCupidIdentify),
		"Demandez au(x) porteur(s) de la carte %s de se réveiller et désignez %d joueur(s).")
	message.SetString(lang, directionKey(roles.KeyCupidChoose),
		"Cupidon se réveille. Sélectionnez les deux amoureux.")
	message.SetString(lang, directionKey(roles.KeyLoversHeartbreak),
		"%s meurt de chagrin aux côtés de son amoureux.")
	message.SetString(lang, directionKey(roles.KeySheriffSuccession),
		"Le capitaine %s est mort. Demandez-lui de nommer un successeur et sélectionnez-le.")
	message.SetString(lang, directionKey(roles.KeyHunterShot),
		"Le chasseur %s tire une dernière fois. Sélectionnez la cible.")
}
