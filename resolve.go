package tiled

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveTileset returns the tileset owning gid: the last entry whose
// FirstGID is not greater than the base ID. Flag bits are ignored. It
// returns nil for the empty GID and for IDs below every FirstGID.
func (m *Map) ResolveTileset(gid uint32) *TilesetRef {
	id := gid &^ gidFlagMask
	if id == 0 {
		return nil
	}
	var found *TilesetRef
	for i := range m.Tilesets {
		ref := &m.Tilesets[i]
		if ref.FirstGID > id {
			break
		}
		found = ref
	}
	return found
}

// LocalIndex returns the tileset-local index of gid. The second result is
// false when the index would be negative.
func (r *TilesetRef) LocalIndex(gid uint32) (int, bool) {
	idx := int64(gid&^gidFlagMask) - int64(r.FirstGID)
	if idx < 0 {
		return 0, false
	}
	return int(idx), true
}

// PathStrategy maps a reference, as written in the document declared in
// baseDir, to one candidate path. An empty result means the strategy does
// not apply.
type PathStrategy func(ref, baseDir string) string

// PathResolver tries its strategies in order and returns the first candidate
// that names an existing regular file.
type PathResolver struct {
	Strategies []PathStrategy
}

// NewPathResolver builds the standard chain: relative to the referencing
// document, then each import root joined with the reference, then the bare
// file name under each content directory.
func NewPathResolver(importRoots, contentDirs []string) *PathResolver {
	r := &PathResolver{}
	r.Strategies = append(r.Strategies, RelativeToDocument)
	for _, root := range importRoots {
		r.Strategies = append(r.Strategies, UnderImportRoot(root))
	}
	for _, dir := range contentDirs {
		r.Strategies = append(r.Strategies, FileNameIn(dir))
	}
	return r
}

// Resolve returns the first existing candidate for ref and true, or "" and
// false if every strategy misses.
func (r *PathResolver) Resolve(ref, baseDir string) (string, bool) {
	if ref == "" {
		return "", false
	}
	for _, s := range r.Strategies {
		p := s(ref, baseDir)
		if p != "" && fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// Candidates lists every path the chain would try, in order.
func (r *PathResolver) Candidates(ref, baseDir string) []string {
	var out []string
	for _, s := range r.Strategies {
		if p := s(ref, baseDir); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RelativeToDocument resolves ref against the referencing document's
// directory. Absolute references are returned unchanged.
func RelativeToDocument(ref, baseDir string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(baseDir, ref)
}

// UnderImportRoot resolves ref under a fixed import root. Leading "./" and
// "../" segments are dropped so the reference stays inside the root.
func UnderImportRoot(root string) PathStrategy {
	return func(ref, _ string) string {
		if root == "" {
			return ""
		}
		rel := stripParentSegments(ref)
		if rel == "" {
			return ""
		}
		return filepath.Join(root, rel)
	}
}

// FileNameIn looks up the bare file name of ref in dir.
func FileNameIn(dir string) PathStrategy {
	return func(ref, _ string) string {
		if dir == "" {
			return ""
		}
		name := filepath.Base(filepath.FromSlash(ref))
		if name == "." || name == string(filepath.Separator) {
			return ""
		}
		return filepath.Join(dir, name)
	}
}

func stripParentSegments(ref string) string {
	parts := strings.Split(filepath.ToSlash(ref), "/")
	i := 0
	for i < len(parts) && (parts[i] == ".." || parts[i] == "." || parts[i] == "") {
		i++
	}
	return filepath.FromSlash(strings.Join(parts[i:], "/"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
