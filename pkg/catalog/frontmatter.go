package catalog

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

var frontmatterFence = []byte("---")

// ParseFrontmatter splits a rule document into its YAML frontmatter and
// body. Documents without a leading "---" fence have no frontmatter;
// that is not an error.
func ParseFrontmatter(content []byte) (types.RuleMeta, []byte, error) {
	var meta types.RuleMeta

	if !bytes.HasPrefix(content, frontmatterFence) {
		return meta, content, nil
	}

	rest := content[len(frontmatterFence):]
	// The fence must be a full line.
	if len(rest) > 0 && rest[0] == '\r' {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != '\n' {
		return meta, content, nil
	}
	rest = rest[1:]

	end := findClosingFence(rest)
	if end < 0 {
		return meta, content, nil
	}

	raw := rest[:end]
	body := rest[end:]
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}

	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return types.RuleMeta{}, content, err
	}
	return meta, body, nil
}

// findClosingFence returns the offset of the line starting with "---"
// that terminates the frontmatter block, or -1.
func findClosingFence(content []byte) int {
	offset := 0
	for offset <= len(content) {
		lineEnd := bytes.IndexByte(content[offset:], '\n')
		var line []byte
		if lineEnd < 0 {
			line = content[offset:]
		} else {
			line = content[offset : offset+lineEnd]
		}
		trimmed := bytes.TrimRight(line, "\r")
		if bytes.Equal(trimmed, frontmatterFence) {
			return offset
		}
		if lineEnd < 0 {
			break
		}
		offset += lineEnd + 1
	}
	return -1
}
