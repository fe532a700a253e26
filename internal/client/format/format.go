// Package format renders stored bill values for display.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const storedDateLayout = "2006-01-02"

var frenchMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

var title = cases.Title(language.French)

// Date turns a stored "YYYY-MM-DD" date into "D Mon. YY", the month being the
// capitalised first three letters of its French abbreviation
// ("2004-04-04" gives "4 Avr. 04").
func Date(stored string) (string, error) {
	t, err := time.Parse(storedDateLayout, stored)
	if err != nil {
		return "", fmt.Errorf("format date %q: %w", stored, err)
	}

	month := []rune(title.String(frenchMonths[t.Month()-1]))
	if len(month) > 3 {
		month = month[:3]
	}
	short := strings.TrimSuffix(string(month), ".")

	return fmt.Sprintf("%d %s. %02d", t.Day(), short, t.Year()%100), nil
}

// Status translates a bill status for display. Unknown values are returned
// unchanged.
func Status(status string) string {
	switch status {
	case "pending":
		return "En attente"
	case "accepted":
		return "Accepté"
	case "refused":
		return "Refused"
	default:
		return status
	}
}
