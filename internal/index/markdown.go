// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MarkdownIndex lists the markdown files of one directory as records.
//
// Each file may start with a YAML frontmatter block:
//
//	---
//	id: hello-world
//	title: Hello World
//	date: 2024-05-01
//	draft: false
//	---
//
// Missing ids default to the file name without extension; missing titles
// default to the first "# " heading, then to the id. Drafts are skipped.
// Records are ordered newest first, undated last, ties by title.
type MarkdownIndex struct {
	dir string
}

// NewMarkdownIndex creates an index over dir.
func NewMarkdownIndex(dir string) *MarkdownIndex {
	return &MarkdownIndex{dir: dir}
}

// Dir returns the scanned directory.
func (m *MarkdownIndex) Dir() string {
	return m.dir
}

type frontmatter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
	Draft bool   `yaml:"draft"`
}

// Fetch scans the directory.
func (m *MarkdownIndex) Fetch(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var records []Record
	seen := make(map[string]string)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !IsMarkdown(e.Name()) {
			continue
		}

		path := filepath.Join(m.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		rec, draft, err := parseMarkdown(e.Name(), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if draft {
			continue
		}
		if other, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q in %s and %s", ErrBadPayload, rec.ID, other, e.Name())
		}
		seen[rec.ID] = e.Name()
		rec.Path = path
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Published, records[j].Published
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		if !a.Equal(b) {
			return a.After(b)
		}
		return records[i].Title < records[j].Title
	})
	return records, nil
}

// IsMarkdown reports whether name has a markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func parseMarkdown(name string, data []byte) (Record, bool, error) {
	var fm frontmatter
	body := data

	if head, rest, ok := splitFrontmatter(data); ok {
		if err := yaml.Unmarshal(head, &fm); err != nil {
			return Record{}, false, fmt.Errorf("%w: frontmatter: %v", ErrBadPayload, err)
		}
		body = rest
	}

	rec := Record{
		ID:    strings.TrimSpace(fm.ID),
		Title: strings.TrimSpace(fm.Title),
	}
	if rec.ID == "" {
		rec.ID = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if rec.Title == "" {
		rec.Title = firstHeading(body)
	}
	if rec.Title == "" {
		rec.Title = rec.ID
	}
	if fm.Date != "" {
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, fm.Date); err == nil {
				rec.Published = t.UTC()
				break
			}
		}
	}
	return rec, fm.Draft, nil
}

// splitFrontmatter separates a leading "---" delimited block.
func splitFrontmatter(data []byte) (head, rest []byte, ok bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, data, false
	}
	start := bytes.IndexByte(data, '\n') + 1
	rem := data[start:]
	for off := 0; off < len(rem); {
		end := bytes.IndexByte(rem[off:], '\n')
		var line []byte
		next := len(rem)
		if end >= 0 {
			line = rem[off : off+end]
			next = off + end + 1
		} else {
			line = rem[off:]
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return rem[:off], rem[next:], true
		}
		off = next
	}
	return nil, data, false
}

func firstHeading(body []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}
