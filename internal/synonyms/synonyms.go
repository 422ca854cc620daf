// Package synonyms holds the fixed, multilingual UI-action vocabulary table
// used during name-filter pattern expansion. The table is process-wide and
// immutable after init -- there is no dynamic registration API, matching
// the reference implementation's own compile-time-constant table.
package synonyms

import "sync"

// groups is the fixed set of synonym groups, carried verbatim from the
// reference implementation's UI-action vocabulary (German/English
// variants of common interactive verbs and nouns).
var groups = [][]string{
	{"login", "sign in", "anmelden", "einloggen", "log in"},
	{"logout", "sign out", "abmelden", "log out"},
	{"submit", "send", "absenden", "senden", "ok", "confirm"},
	{"cancel", "abbrechen", "close", "schließen"},
	{"save", "speichern", "apply"},
	{"delete", "remove", "löschen", "entfernen"},
	{"edit", "bearbeiten", "modify", "ändern"},
	{"search", "suchen", "find", "finden"},
	{"next", "weiter", "continue", "fortfahren"},
	{"back", "zurück", "previous"},
	{"home", "startseite", "main"},
	{"settings", "einstellungen", "preferences", "options"},
	{"help", "hilfe", "support"},
	{"profile", "profil", "account", "konto"},
	{"password", "passwort", "kennwort"},
	{"email", "e-mail", "mail"},
	{"username", "benutzername", "user"},
}

var (
	once  sync.Once
	table map[string][]string
)

// build constructs the word -> alternates map: for every word w in every
// group g, table[w] = g \ {w}, preserving group order.
func build() map[string][]string {
	t := make(map[string][]string)
	for _, group := range groups {
		for _, word := range group {
			others := make([]string, 0, len(group)-1)
			for _, w := range group {
				if w != word {
					others = append(others, w)
				}
			}
			t[word] = others
		}
	}
	return t
}

// Table returns the shared, read-only synonym table, building it on first
// use.
func Table() map[string][]string {
	once.Do(func() {
		table = build()
	})
	return table
}

// Get returns the alternates for word, or nil if word is not a member of
// any group.
func Get(word string) []string {
	return Table()[word]
}
