// Package entities contains domain entities used across the application.
package entities

// Landmark is a famous place shown on a country flashcard.
type Landmark struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Food is a traditional dish shown on a country flashcard.
type Food struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CountryFacts is the kid-friendly profile of a country.
// It is produced by the content client and never mutated afterwards.
type CountryFacts struct {
	Name       string     `json:"name"`       // common name of the country
	Capital    string     `json:"capital"`    // capital city
	Languages  []string   `json:"languages"`  // main languages spoken
	Population string     `json:"population"` // free text, e.g. "67 million"
	Currency   string     `json:"currency"`   // currency used
	FunFact    string     `json:"funFact"`    // short surprising fact for a 5th grader
	Landmarks  []Landmark `json:"landmarks"`  // two famous landmarks
	Foods      []Food     `json:"foods"`      // two traditional foods
	Emoji      string     `json:"emoji"`      // flag emoji
}

// TopLanguages returns at most n languages in their original order.
func (c *CountryFacts) TopLanguages(n int) []string {
	if len(c.Languages) <= n {
		return c.Languages
	}
	return c.Languages[:n]
}
