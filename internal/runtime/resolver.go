package runtime

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lamina-run/lamina/internal/event"
	"github.com/lamina-run/lamina/internal/model"
)

// Resolution is the computed script identity for one invocation: the path to
// run plus how it was chosen.
type Resolution struct {
	Path   string
	Source string
}

// Resolve computes the script to run for an invocation. When the envelope
// carries a routable URI path, its first segment is converted to a
// capitalized script name under root ("/user-profiles" → "UserProfiles");
// deeper segments are ignored. Anything else — no path, an empty path, the
// bare separator, or a candidate file that does not exist — falls back to
// defaultScript. Resolve never fails; existence of the default itself is
// checked by the caller.
func Resolve(e event.Envelope, root, defaultScript string) Resolution {
	p := event.RoutePath(e)
	if p == "" || p == "/" {
		return Resolution{Path: defaultScript, Source: model.SourceDefault}
	}

	segment := strings.TrimPrefix(p, "/")
	if idx := strings.Index(segment, "/"); idx >= 0 {
		segment = segment[:idx]
	}
	name := scriptName(segment)
	if name == "" {
		return Resolution{Path: defaultScript, Source: model.SourceDefault}
	}

	candidate := filepath.Join(root, name+filepath.Ext(defaultScript))
	if _, err := os.Stat(candidate); err != nil {
		return Resolution{Path: defaultScript, Source: model.SourceDefault}
	}
	return Resolution{Path: candidate, Source: model.SourceRoute}
}

// scriptName converts a URI segment to its convention script name: each
// hyphen-separated word is capitalized and the words are concatenated, so
// "user-profiles" becomes "UserProfiles" and "products" becomes "Products".
func scriptName(segment string) string {
	var b strings.Builder
	for _, word := range strings.Split(segment, "-") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}
