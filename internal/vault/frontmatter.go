package vault

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the explicit record of fields the core reads from a note's
// YAML header. Unknown fields are ignored on parse and never rewritten.
type FrontMatter struct {
	Due      string   `yaml:"due,omitempty"`
	CanvasID string   `yaml:"canvas-id,omitempty"`
	Status   string   `yaml:"status,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

const frontMatterFence = "---"

// ParseFrontMatter extracts the leading YAML block from note content.
// Returns nil (not an error) when the note has no front matter; a note
// without metadata is an ordinary note, not a malformed one.
func ParseFrontMatter(content string) (*FrontMatter, error) {
	block, ok := frontMatterBlock(content)
	if !ok {
		return nil, nil
	}
	var out FrontMatter
	if err := yaml.Unmarshal([]byte(block), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func frontMatterBlock(content string) (string, bool) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontMatterFence+"\n") {
		return "", false
	}
	rest := normalized[len(frontMatterFence)+1:]
	end := strings.Index(rest, "\n"+frontMatterFence)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// DueTime converts the front-matter due field to a civil date. Absent,
// null-ish, or unparseable values all mean "no due date"; collection must
// stay total over malformed input.
func (f *FrontMatter) DueTime() *time.Time {
	if f == nil {
		return nil
	}
	raw := strings.TrimSpace(f.Due)
	if raw == "" || raw == "null" {
		return nil
	}
	if len(raw) > 10 {
		raw = raw[:10]
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil
	}
	return &parsed
}

// MetaSource is the metadata-lookup capability consumed by the collector.
type MetaSource interface {
	FrontMatterOf(f File) (*FrontMatter, error)
}

// StoreMeta derives front matter by reading through a Store. It is the
// fallback MetaSource when no prebuilt index is available.
type StoreMeta struct {
	Store Store
}

func (m StoreMeta) FrontMatterOf(f File) (*FrontMatter, error) {
	content, err := m.Store.Read(f)
	if err != nil {
		return nil, err
	}
	return ParseFrontMatter(content)
}
