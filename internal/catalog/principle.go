// Package catalog loads SOLID principle write-ups from a directory into
// an in-memory catalog.
package catalog

import "strings"

// Principle identifies one of the five SOLID principles.
type Principle string

const (
	SRP Principle = "SRP"
	OCP Principle = "OCP"
	LSP Principle = "LSP"
	ISP Principle = "ISP"
	DIP Principle = "DIP"
)

// CanonicalOrder is the fixed presentation order for the catalog,
// independent of load order.
var CanonicalOrder = []Principle{SRP, OCP, LSP, ISP, DIP}

var fullNames = map[Principle]string{
	SRP: "Single Responsibility Principle",
	OCP: "Open/Closed Principle",
	LSP: "Liskov Substitution Principle",
	ISP: "Interface Segregation Principle",
	DIP: "Dependency Inversion Principle",
}

// ParsePrinciple recognizes a principle code, case-insensitively.
func ParsePrinciple(s string) (Principle, bool) {
	p := Principle(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := fullNames[p]; ok {
		return p, true
	}
	return "", false
}

func (p Principle) String() string {
	return string(p)
}

func (p Principle) FullName() string {
	return fullNames[p]
}

// Rank returns the position of p in CanonicalOrder. Unknown codes sort
// after all known ones.
func (p Principle) Rank() int {
	for i, c := range CanonicalOrder {
		if c == p {
			return i
		}
	}
	return len(CanonicalOrder)
}
