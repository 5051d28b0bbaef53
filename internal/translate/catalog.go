package translate

import "golang.org/x/text/language"

const (
	ctxPowerNone  = "... as in 'moderators powers: None'"
	ctxPowerLabel = "A label for a moderator power"
)

// translations holds the non english catalogs keyed by message id. Contextual ids are built with contextKey.
var translations = map[language.Tag]map[string]string{ //nolint:gochecknoglobals
	language.German: {
		"ANNULMENT - Moderator note:":                              "ANNULLIERUNG - Moderatornotiz:",
		"Un-annulment - Moderator note:":                           "Aufhebung der Annullierung - Moderatornotiz:",
		"Game has been annulled":                                   "Die Partie wurde annulliert",
		"Game ranking has been restored":                           "Die Wertung der Partie wurde wiederhergestellt",
		"Something went wrong, no action taken!":                   "Etwas ist schiefgelaufen, es wurde nichts geändert!",
		"Request failed":                                           "Anfrage fehlgeschlagen",
		contextKey(ctxPowerNone, "None"):                           "Keine",
		contextKey(ctxPowerLabel, "Handle Score Cheating Reports"): "Meldungen zu Punktbetrug bearbeiten",
		contextKey(ctxPowerLabel, "Handle Escaping Reports"):       "Meldungen zu Spielabbrüchen bearbeiten",
		contextKey(ctxPowerLabel, "Handle Stalling Reports"):       "Meldungen zu Verzögerungen bearbeiten",
	},
	language.French: {
		"ANNULMENT - Moderator note:":                              "ANNULATION - Note du modérateur :",
		"Un-annulment - Moderator note:":                           "Désannulation - Note du modérateur :",
		"Game has been annulled":                                   "La partie a été annulée",
		"Game ranking has been restored":                           "Le classement de la partie a été rétabli",
		"Something went wrong, no action taken!":                   "Un problème est survenu, aucune action effectuée !",
		"Request failed":                                           "La requête a échoué",
		contextKey(ctxPowerNone, "None"):                           "Aucun",
		contextKey(ctxPowerLabel, "Handle Score Cheating Reports"): "Traiter les signalements de triche au comptage",
		contextKey(ctxPowerLabel, "Handle Escaping Reports"):       "Traiter les signalements d'abandon",
		contextKey(ctxPowerLabel, "Handle Stalling Reports"):       "Traiter les signalements d'obstruction",
	},
}
