package bean

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError is one diagnostic for a record that did not conform to the
// expected grammar. Parsing continues past it; callers decide whether the
// diagnostics are fatal for their use case.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

var (
	datedLineRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(.*)$`)
	txnHeaderRe = regexp.MustCompile(`^[*!]\s+"([^"]*)"(?:\s+"([^"]*)")?\s*$`)
)

// Directives other than open that are valid Beancount but carry no meaning
// for this engine. They are skipped without a diagnostic.
var ignoredDirectives = map[string]bool{
	"close":     true,
	"balance":   true,
	"pad":       true,
	"note":      true,
	"price":     true,
	"event":     true,
	"commodity": true,
	"document":  true,
}

// Load parses one or more ledger files into a single order-preserving entry
// list. Grammar failures on individual records become ParseErrors and the
// rest of the file is still consumed; the returned error is reserved for
// files that could not be read at all.
func Load(paths ...string) ([]Entry, []ParseError, error) {
	var entries []Entry
	var diags []ParseError

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, diags, fmt.Errorf("failed to open ledger file: %w", err)
		}
		fileEntries, fileDiags := parseFile(f, path)
		f.Close()
		entries = append(entries, fileEntries...)
		diags = append(diags, fileDiags...)
	}
	return entries, diags, nil
}

type parser struct {
	file    string
	entries []Entry
	diags   []ParseError

	// transaction block under construction
	txn     *Transaction
	txnLine int
}

func parseFile(f *os.File, path string) ([]Entry, []ParseError) {
	p := &parser{file: path}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		p.consume(line, scanner.Text())
	}
	p.flush(line)

	if err := scanner.Err(); err != nil {
		p.errorf(line, "read error: %v", err)
	}
	return p.entries, p.diags
}

func (p *parser) consume(line int, text string) {
	trimmed := strings.TrimSpace(text)

	// Indented lines continue the current transaction block.
	if p.txn != nil && len(text) > 0 && (text[0] == ' ' || text[0] == '\t') && trimmed != "" {
		if strings.HasPrefix(trimmed, ";") {
			return
		}
		p.posting(line, trimmed)
		return
	}

	// Any non-indented line terminates the block first.
	p.flush(line)

	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return
	}

	switch first, _, _ := strings.Cut(trimmed, " "); first {
	case "option", "include", "plugin", "pushtag", "poptag":
		return
	}

	m := datedLineRe.FindStringSubmatch(trimmed)
	if m == nil {
		p.errorf(line, "unrecognized line %q", trimmed)
		return
	}
	date, rest := m[1], m[2]

	if hm := txnHeaderRe.FindStringSubmatch(rest); hm != nil {
		p.txn = &Transaction{Date: date, Payee: hm[1], Narration: hm[2]}
		p.txnLine = line
		return
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		p.errorf(line, "dated line %q has no directive", trimmed)
		return
	}
	switch fields[0] {
	case "open":
		if len(fields) < 2 || !ValidAccount(fields[1]) {
			p.errorf(line, "malformed open directive %q", trimmed)
			return
		}
		open := &Open{Date: date, Account: fields[1]}
		if len(fields) > 2 {
			open.Currencies = strings.Split(fields[2], ",")
		}
		p.entries = append(p.entries, Entry{Open: open})
	default:
		if !ignoredDirectives[fields[0]] {
			p.errorf(line, "unrecognized directive %q", trimmed)
		}
	}
}

// posting parses one "<account>  <amount> <currency>" line of the current
// transaction block.
func (p *parser) posting(line int, trimmed string) {
	fields := strings.Fields(trimmed)
	if len(fields) != 3 {
		p.errorf(line, "malformed posting %q", trimmed)
		return
	}
	if !ValidAccount(fields[0]) {
		p.errorf(line, "invalid posting account %q", fields[0])
		return
	}
	amount, err := decimal.NewFromString(fields[1])
	if err != nil {
		p.errorf(line, "invalid posting amount %q", fields[1])
		return
	}
	p.txn.Postings = append(p.txn.Postings, Posting{
		Account:  fields[0],
		Amount:   amount,
		Currency: fields[2],
	})
}

// flush finishes the transaction block under construction, if any.
func (p *parser) flush(line int) {
	if p.txn == nil {
		return
	}
	txn := p.txn
	p.txn = nil

	if len(txn.Postings) < 2 {
		p.errorf(p.txnLine, "transaction %s %q has fewer than two postings", txn.Date, txn.Payee)
		return
	}
	if !txn.Balanced() {
		p.errorf(p.txnLine, "transaction %s %q does not balance", txn.Date, txn.Payee)
		return
	}
	p.entries = append(p.entries, Entry{Txn: txn})
}

func (p *parser) errorf(line int, format string, args ...any) {
	p.diags = append(p.diags, ParseError{File: p.file, Line: line, Msg: fmt.Sprintf(format, args...)})
}
