// Package template implements the placeholder substitution engine used to
// materialize configuration and script files from deployment state.
//
// Placeholders are double-braced tokens naming a binding, e.g. {{tokenAddress}},
// occurring anywhere in free-form text. Substitution is exact-name: a
// placeholder resolves only when its name has an entry in the binding map.
// Unmatched placeholders are left verbatim and reported as non-fatal
// diagnostics — partial rendering is a supported outcome, enabling multi-pass
// rendering as more bindings become available.
package template

import (
	"fmt"
	"regexp"
)

// placeholderRe matches {{name}} tokens. Names follow identifier rules; any
// other double-braced text (Go template actions, spaced tokens) passes
// through untouched.
var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Result is the outcome of one rendering pass.
type Result struct {
	Output     string
	Unresolved []string // placeholder names left verbatim, first-occurrence order
}

// Render substitutes every placeholder whose name has an entry in bindings.
// Defined-but-falsy values (0, false, "") substitute like any other; only
// absent names stay unresolved. Rendering is a pure function of its inputs:
// identical (content, bindings) produce byte-identical output, and rendering
// fully-resolved content is a no-op.
func Render(content string, bindings map[string]any) Result {
	var unresolved []string
	seen := make(map[string]bool)

	output := placeholderRe.ReplaceAllStringFunc(content, func(token string) string {
		name := placeholderRe.FindStringSubmatch(token)[1]
		if v, ok := bindings[name]; ok {
			return formatValue(v)
		}
		if !seen[name] {
			seen[name] = true
			unresolved = append(unresolved, name)
		}
		return token
	})

	return Result{Output: output, Unresolved: unresolved}
}

// ExtractPlaceholders returns the deduplicated placeholder names in content,
// in order of first occurrence.
func ExtractPlaceholders(content string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Report is the pre-flight answer to "would this template render fully?".
type Report struct {
	AllSatisfied bool
	Missing      []string // required names absent from the bindings
	Required     []string // every placeholder name the content references
}

// Validate checks content against bindings without rendering.
func Validate(content string, bindings map[string]any) Report {
	required := ExtractPlaceholders(content)
	var missing []string
	for _, name := range required {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	return Report{
		AllSatisfied: len(missing) == 0,
		Missing:      missing,
		Required:     required,
	}
}

// formatValue stringifies a binding value using its default textual
// representation. Bindings are expected to be strings, numbers, or booleans;
// anything else falls through to fmt's default formatting.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
