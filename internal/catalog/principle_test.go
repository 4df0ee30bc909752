package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrinciple(t *testing.T) {
	for _, s := range []string{"SRP", "srp", " Srp "} {
		p, ok := ParsePrinciple(s)
		assert.True(t, ok, "input %q", s)
		assert.Equal(t, SRP, p)
	}

	for _, s := range []string{"", "SOLID", "srp2", "single"} {
		_, ok := ParsePrinciple(s)
		assert.False(t, ok, "input %q", s)
	}
}

func TestPrincipleRank(t *testing.T) {
	assert.Equal(t, 0, SRP.Rank())
	assert.Equal(t, 4, DIP.Rank())
	assert.Equal(t, len(CanonicalOrder), Principle("XXX").Rank())

	for i := 1; i < len(CanonicalOrder); i++ {
		assert.Less(t, CanonicalOrder[i-1].Rank(), CanonicalOrder[i].Rank())
	}
}

func TestPrincipleFullName(t *testing.T) {
	assert.Equal(t, "Single Responsibility Principle", SRP.FullName())
	assert.Equal(t, "Dependency Inversion Principle", DIP.FullName())
}

func TestBuildIndexCanonicalOrder(t *testing.T) {
	docs := []Document{
		{Principle: DIP, Title: "dip doc"},
		{Principle: SRP, Title: "srp doc"},
		{Principle: LSP, Title: "lsp doc"},
	}

	entries := BuildIndex(docs)
	assert.Len(t, entries, len(docs))
	assert.Equal(t, SRP, entries[0].Principle)
	assert.Equal(t, LSP, entries[1].Principle)
	assert.Equal(t, DIP, entries[2].Principle)
}
