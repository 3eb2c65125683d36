package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileDiagnostic reports the placeholders left unresolved in one rendered
// file. Unresolved names are expected during early passes and never abort
// the walk.
type FileDiagnostic struct {
	Path       string // relative to the template root
	Unresolved []string
}

func (d FileDiagnostic) String() string {
	return fmt.Sprintf("%s: unresolved %s", d.Path, strings.Join(d.Unresolved, ", "))
}

// RenderDir renders every regular file under srcDir into dstDir, preserving
// relative paths. Files that render fully produce no diagnostic; files with
// unresolved placeholders are still written (verbatim tokens intact) and
// reported, so a later pass with more bindings can finish them.
func RenderDir(srcDir, dstDir string, bindings map[string]any) ([]FileDiagnostic, error) {
	var diags []FileDiagnostic

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", rel, err)
		}

		res := Render(string(content), bindings)
		if len(res.Unresolved) > 0 {
			diags = append(diags, FileDiagnostic{Path: rel, Unresolved: res.Unresolved})
		}

		out := filepath.Join(dstDir, rel)
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("create output dir for %s: %w", rel, err)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		// Preserve the template's mode so rendered scripts stay executable.
		if err := os.WriteFile(out, []byte(res.Output), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write rendered file %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return diags, nil
}
