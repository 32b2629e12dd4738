package pyproject

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// SetVersion replaces the project version string in data with newVersion.
// Only the value token of the version key is touched; the rest of the
// document is preserved byte for byte. When old is non-empty the current
// value must equal it.
func SetVersion(data []byte, old, newVersion string) ([]byte, error) {
	span, current, err := versionSpan(data)
	if err != nil {
		return nil, err
	}
	if old != "" && current != old {
		return nil, fmt.Errorf("version is %q, expected %q", current, old)
	}

	start := int(span.Offset)
	end := start + int(span.Length)
	var out bytes.Buffer
	out.Grow(len(data) + len(newVersion))
	out.Write(data[:start])
	out.WriteString(quoteLike(data[start:end], newVersion))
	out.Write(data[end:])
	return out.Bytes(), nil
}

// quoteLike renders value with the quote style of the original token.
func quoteLike(token []byte, value string) string {
	if len(token) > 0 && token[0] == '\'' {
		return "'" + value + "'"
	}
	return strconv.Quote(value)
}

// versionSpan locates the value of project.version, falling back to
// tool.poetry.version.
func versionSpan(data []byte) (unstable.Range, string, error) {
	var p unstable.Parser
	p.Reset(data)

	type hit struct {
		span  unstable.Range
		value string
	}
	found := map[string]hit{}
	var table []string

	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(e)
		case unstable.KeyValue:
			full := append(append([]string(nil), table...), keyParts(e)...)
			path := strings.Join(full, ".")
			if path != "project.version" && path != "tool.poetry.version" {
				continue
			}
			v := e.Value()
			if v.Kind != unstable.String {
				return unstable.Range{}, "", fmt.Errorf("%s is a %s, not a string", path, v.Kind)
			}
			found[path] = hit{span: v.Raw, value: string(v.Data)}
		}
	}
	if err := p.Error(); err != nil {
		return unstable.Range{}, "", fmt.Errorf("parsing descriptor: %w", err)
	}

	for _, path := range []string{"project.version", "tool.poetry.version"} {
		if h, ok := found[path]; ok {
			return h.span, h.value, nil
		}
	}
	return unstable.Range{}, "", fmt.Errorf("%w: version", ErrMissingField)
}

func keyParts(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
