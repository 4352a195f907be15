package bean

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// accountNode is one segment of the derived account tree. The tree is
// rebuilt for every balance query and never persisted.
type accountNode struct {
	children map[string]*accountNode
	own      decimal.Decimal // postings charged directly to this account
}

func newAccountNode() *accountNode {
	return &accountNode{children: make(map[string]*accountNode)}
}

func (n *accountNode) child(segment string) *accountNode {
	c, ok := n.children[segment]
	if !ok {
		c = newAccountNode()
		n.children[segment] = c
	}
	return c
}

// insert walks the colon-delimited path, creating nodes as needed, and
// returns the leaf.
func (n *accountNode) insert(account string) *accountNode {
	node := n
	for _, segment := range strings.Split(account, ":") {
		node = node.child(segment)
	}
	return node
}

// rollUp reports this node's balance: its own postings plus the balances of
// all descendants, and records every node into out under its full name.
func (n *accountNode) rollUp(name string, out map[string]decimal.Decimal) decimal.Decimal {
	total := n.own
	for segment, child := range n.children {
		childName := segment
		if name != "" {
			childName = name + ":" + segment
		}
		total = total.Add(child.rollUp(childName, out))
	}
	if name != "" {
		out[name] = total
	}
	return total
}

// Accounts returns the sorted set of declared account ids found in the
// entry list.
func Accounts(entries []Entry) []string {
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Open != nil {
			seen[e.Open.Account] = true
		}
	}
	accounts := make([]string, 0, len(seen))
	for a := range seen {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	return accounts
}

// Balances aggregates the entry list into per-account balances for one
// reporting currency. Postings in any other currency are excluded, without
// conversion. The result covers declared accounts, posted accounts and all
// of their ancestors; ancestor balances are the roll-up of their subtree.
func Balances(entries []Entry, currency string) map[string]decimal.Decimal {
	root := newAccountNode()
	for _, e := range entries {
		switch {
		case e.Open != nil:
			root.insert(e.Open.Account)
		case e.Txn != nil:
			for _, p := range e.Txn.Postings {
				if p.Currency != currency {
					continue
				}
				leaf := root.insert(p.Account)
				leaf.own = leaf.own.Add(p.Amount)
			}
		}
	}

	balances := make(map[string]decimal.Decimal)
	root.rollUp("", balances)
	return balances
}
