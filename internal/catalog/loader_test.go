package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const srpArticle = `---
title: The Single Responsibility Principle
date: 2019-03-04
principle: SRP
---
# The Single Responsibility Principle

## Definition

A class should have one reason to change.

## Rationale

Cohesion.

## Violation Example

` + "```go\ntype God struct{}\n```" + `

## Fixed Example

` + "```go\ntype Small struct{}\n```" + `
`

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "srp.md", srpArticle)
	writeFile(t, dir, "02-ocp-open-closed.md", "# Open/Closed\n\n## Definition\n\nOpen for extension.\n")
	writeFile(t, dir, "notes.txt", "not markdown")
	writeFile(t, dir, "scratch.md", "# Untitled scribbles\n")

	loader := NewLoader(DefaultLoaderConfig())
	docs, err := loader.Load(dir)
	require.NoError(t, err)

	// notes.txt and scratch.md carry no principle code and are skipped.
	require.Len(t, docs, 2)

	byCode := map[Principle]Document{}
	for _, doc := range docs {
		byCode[doc.Principle] = doc
	}

	srp := byCode[SRP]
	assert.Equal(t, "The Single Responsibility Principle", srp.Title)
	assert.Equal(t, 2019, srp.Date.Year())
	assert.NotEmpty(t, srp.ContentHash)
	assert.Contains(t, srp.Headings, "Definition")
	assert.Contains(t, srp.Headings, "Violation Example")
	assert.NotContains(t, srp.Body, "principle: SRP")

	ocp := byCode[OCP]
	assert.Equal(t, "Open/Closed", ocp.Title)
	assert.True(t, ocp.Date.IsZero())
}

func TestLoader_Load_MissingDir(t *testing.T) {
	loader := NewLoader(DefaultLoaderConfig())

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestLoader_Load_DuplicatePrincipleLastWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-srp.md", "---\nprinciple: SRP\ntitle: first\n---\n# First\n")
	writeFile(t, dir, "b-srp.md", "---\nprinciple: SRP\ntitle: second\n---\n# Second\n")

	loader := NewLoader(DefaultLoaderConfig())
	docs, err := loader.Load(dir)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "second", docs[0].Title)
}

func TestLoader_Load_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "---\nprinciple: SRP\n---\n# Readme\n")
	writeFile(t, dir, filepath.Join("sub", "dip.md"), "# Dependency Inversion\n")

	loader := NewLoader(DefaultLoaderConfig())
	docs, err := loader.Load(dir)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, DIP, docs[0].Principle)
}

func TestLoader_LoadFile_Unrecognized(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "essay.md", "# On Design\n\nNo principle here.\n")

	loader := NewLoader(DefaultLoaderConfig())
	doc, ok, err := loader.LoadFile(dir, path)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestSplitFrontmatter_Malformed(t *testing.T) {
	content := "---\n: bad: [yaml\n---\n# Body\n"
	meta, body := splitFrontmatter(content)
	assert.Nil(t, meta)
	assert.Equal(t, content, body)
}

func TestSplitFrontmatter_DashRuleIsNotADelimiter(t *testing.T) {
	// Neither ---- nor ---text closes the block; without a bare ---
	// line the whole file is body.
	for _, content := range []string{
		"---\ntitle: Stray\nprinciple: SRP\n----\nmore prose\n",
		"---\ntitle: Stray\nprinciple: SRP\n---truncated\n\n# Definition\n",
	} {
		meta, body := splitFrontmatter(content)
		assert.Nil(t, meta)
		assert.Equal(t, content, body)
	}
}

func TestSplitFrontmatter_DelimiterWithTrailingSpace(t *testing.T) {
	meta, body := splitFrontmatter("---\nprinciple: OCP\n--- \n# Definition\n")
	require.NotNil(t, meta)
	assert.Equal(t, "OCP", meta["principle"])
	assert.Equal(t, "# Definition\n", body)
}

func TestScanHeadings(t *testing.T) {
	body := "# Top\n\nprose # not a heading\n\n## Second ##\n\n### third one\n"
	assert.Equal(t, []string{"Top", "Second", "third one"}, scanHeadings(body))
}
