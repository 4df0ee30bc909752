package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/solidcat/solidcat/internal/logger"
)

var log = logger.ForComponent("catalog")

// LoadError reports an unreadable or absent catalog directory. It is
// the only fatal failure mode of loading; everything below directory
// level is skipped, not errored.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Dir, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type LoaderConfig struct {
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	MaxFileSize int64    `yaml:"max_file_size"`
}

func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Include:     []string{"**/*.md"},
		Exclude:     []string{"**/.git/**", "**/node_modules/**", "**/README.md"},
		MaxFileSize: 1 * 1024 * 1024,
	}
}

type Loader struct {
	config LoaderConfig
}

func NewLoader(config LoaderConfig) *Loader {
	if len(config.Include) == 0 {
		config.Include = DefaultLoaderConfig().Include
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = DefaultLoaderConfig().MaxFileSize
	}
	return &Loader{config: config}
}

// Load reads every recognized principle document under dir. Files that
// do not match the naming or content convention are skipped. When two
// files claim the same principle the one later in walk order wins.
func (l *Loader) Load(dir string) ([]Document, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &LoadError{Dir: dir, Err: err}
	}

	byPrinciple := make(map[Principle]Document)
	var order []Principle

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		doc, ok, err := l.LoadFile(dir, path)
		if err != nil {
			log.Warn("skipping unreadable file", "path", path, "error", err)
			return nil
		}
		if !ok {
			return nil
		}

		if prev, dup := byPrinciple[doc.Principle]; dup {
			log.Warn("duplicate principle document, keeping latest",
				"principle", doc.Principle, "kept", doc.Path, "replaced", prev.Path)
		} else {
			order = append(order, doc.Principle)
		}
		byPrinciple[doc.Principle] = *doc
		return nil
	})
	if err != nil {
		return nil, &LoadError{Dir: dir, Err: err}
	}

	docs := make([]Document, 0, len(order))
	for _, p := range order {
		docs = append(docs, byPrinciple[p])
	}
	return docs, nil
}

// LoadFile parses a single file. The second return value reports
// whether the file is a recognized principle document.
func (l *Loader) LoadFile(root, path string) (*Document, bool, error) {
	rel := relSlash(root, path)

	if !l.matches(rel) {
		return nil, false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if info.Size() > l.config.MaxFileSize {
		log.Debug("skipping oversized file", "path", path, "size", info.Size())
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}

	detected := DetectEncoding(data)
	content := NormalizeUTF8(data, detected)

	meta, body := splitFrontmatter(content)

	principle, ok := principleFromMeta(meta)
	if !ok {
		principle, ok = principleFromFilename(path)
	}
	if !ok {
		log.Debug("skipping file without principle code", "path", path)
		return nil, false, nil
	}

	headings := scanHeadings(body)

	title := metaString(meta, "title")
	if title == "" {
		title = firstHeading(headings)
	}
	if title == "" {
		title = principle.FullName()
	}

	hash := sha256.Sum256(data)

	return &Document{
		Principle:   principle,
		Title:       title,
		Date:        metaDate(meta, "date"),
		Path:        path,
		Body:        body,
		Headings:    headings,
		ContentHash: hex.EncodeToString(hash[:]),
		Encoding:    detected.Encoding,
	}, true, nil
}

func (l *Loader) matches(rel string) bool {
	for _, pattern := range l.config.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	for _, pattern := range l.config.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// splitFrontmatter separates an optional YAML frontmatter block from
// the markdown body. Malformed frontmatter is treated as body.
func splitFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return nil, content
	}

	rest := content[3:]
	rest = strings.TrimPrefix(rest, "\r")
	rest = strings.TrimPrefix(rest, "\n")

	// The close must be a bare --- line; "----" or "---text" is
	// content, not a delimiter.
	loc := frontmatterClose.FindStringIndex(rest)
	if loc == nil {
		return nil, content
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(rest[:loc[0]]), &meta); err != nil {
		return nil, content
	}

	body := strings.TrimLeft(rest[loc[1]:], "\r\n")
	return meta, body
}

func principleFromMeta(meta map[string]any) (Principle, bool) {
	for _, key := range []string{"principle", "code", "id"} {
		if v := metaString(meta, key); v != "" {
			return ParsePrinciple(v)
		}
	}
	return "", false
}

var frontmatterClose = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)

var tokenSplit = regexp.MustCompile(`[^A-Za-z0-9]+`)

// principleFromFilename recognizes names like srp.md or
// 02-ocp-open-closed.md by scanning the stem's tokens.
func principleFromFilename(path string) (Principle, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, token := range tokenSplit.Split(stem, -1) {
		if p, ok := ParsePrinciple(token); ok {
			return p, true
		}
	}
	return "", false
}

var headingLine = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+?)\s*#*\s*$`)

// scanHeadings returns markdown ATX heading texts in document order.
func scanHeadings(body string) []string {
	var headings []string
	for _, m := range headingLine.FindAllStringSubmatch(body, -1) {
		headings = append(headings, strings.TrimSpace(m[2]))
	}
	return headings
}

func firstHeading(headings []string) string {
	if len(headings) == 0 {
		return ""
	}
	return headings[0]
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func metaDate(meta map[string]any, key string) time.Time {
	if meta == nil {
		return time.Time{}
	}
	switch v := meta[key].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// SortCanonical orders documents by the fixed principle order, in place.
func SortCanonical(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Principle.Rank() < docs[j].Principle.Rank()
	})
}
