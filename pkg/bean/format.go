package bean

import (
	"fmt"
	"strings"
)

// Render formats the transaction as a Beancount text block: a leading blank
// line, a date+payee+narration header with the cleared flag, then one line
// per posting with the amount fixed to two fractional digits.
//
// The output is the exact grammar Load accepts, so any rendered record parses
// back into an equivalent transaction.
func (t Transaction) Render() string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s * %q %q\n", t.Date, quoteSafe(t.Payee), quoteSafe(t.Narration))
	for _, p := range t.Postings {
		fmt.Fprintf(&b, "  %s  %s %s\n", p.Account, p.Amount.StringFixed(2), p.Currency)
	}
	return b.String()
}

// quoteSafe strips characters that would break the quoted header fields.
func quoteSafe(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
