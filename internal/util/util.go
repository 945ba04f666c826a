// Package util holds small generic data-structure and string helpers
// shared across the grammar pipeline packages: an ordered string set, a
// generic stack, and the text-list/article helpers used in diagnostics.
package util

import "strings"

// ArticleFor returns "a" or "an" as appropriate for the given word,
// capitalized if cap is true. It is a simple vowel-sound heuristic, not
// a full English grammar engine; good enough for error messages that
// name a token's human-readable class ("expected an identifier").
func ArticleFor(word string, capitalize bool) string {
	article := "a"
	if word != "" {
		switch word[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			article = "an"
		}
	}
	if capitalize {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// MakeTextList gives a nice list of things based on their display name.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		withOxford := make([]string, len(items))
		copy(withOxford, items)
		withOxford[len(withOxford)-1] = "and " + withOxford[len(withOxford)-1]
		output += strings.Join(withOxford, ", ")
	}

	return output
}
