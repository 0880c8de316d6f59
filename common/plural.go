package common

import "fmt"

// Pluralize renders "n word" or "n words" for use in argument-count
// diagnostics.
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
