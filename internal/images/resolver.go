package images

import (
	"os"
	"path/filepath"
	"strings"
)

// StatFunc reports file information for a path. It matches os.Stat so tests
// can swap in a fake filesystem.
type StatFunc func(name string) (os.FileInfo, error)

// Resolver maps image paths written in a markdown document to files on disk
type Resolver struct {
	// BaseDir is the directory containing the markdown file
	BaseDir string
	// WorkspaceRoot enables the fallback search roots when set (e.g. the CI checkout directory)
	WorkspaceRoot string

	stat StatFunc
}

// Resolution is the outcome of resolving one raw path
type Resolution struct {
	Path  string   // absolute path of the first existing candidate
	Tried []string // every candidate in the order it was checked
	Found bool
}

// NewResolver creates a resolver backed by the real filesystem
func NewResolver(baseDir, workspaceRoot string) *Resolver {
	return &Resolver{
		BaseDir:       baseDir,
		WorkspaceRoot: workspaceRoot,
		stat:          os.Stat,
	}
}

// WithStat replaces the function used to check candidate existence
func (r *Resolver) WithStat(stat StatFunc) *Resolver {
	r.stat = stat
	return r
}

// Resolve checks the candidates for rawPath in priority order and returns the
// first one that exists as a regular file. A miss is not an error; the
// resolution lists every path that was tried.
func (r *Resolver) Resolve(rawPath string) Resolution {
	candidates := Candidates(rawPath, r.BaseDir, r.WorkspaceRoot)
	res := Resolution{Tried: candidates}

	for _, candidate := range candidates {
		info, err := r.stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			abs = candidate
		}
		res.Path = abs
		res.Found = true
		return res
	}

	return res
}

// Candidates lists the filesystem locations rawPath may refer to, highest
// priority first:
//
//  1. rawPath itself when absolute, otherwise rawPath under baseDir
//  2. rawPath under workspaceRoot
//  3. rawPath under workspaceRoot joined with baseDir relative to workspaceRoot
//
// The workspace candidates are only produced for relative paths when
// workspaceRoot is set. Duplicates keep their first position.
func Candidates(rawPath, baseDir, workspaceRoot string) []string {
	if filepath.IsAbs(rawPath) {
		return []string{rawPath}
	}

	candidates := []string{filepath.Join(baseDir, rawPath)}
	if workspaceRoot == "" {
		return candidates
	}

	candidates = appendUnique(candidates, filepath.Join(workspaceRoot, rawPath))

	if rel, ok := relativeToWorkspace(baseDir, workspaceRoot); ok {
		candidates = appendUnique(candidates, filepath.Join(workspaceRoot, rel, rawPath))
	}

	return candidates
}

// relativeToWorkspace expresses dir relative to root. A relative dir is taken
// as already relative to root. It fails when dir lies outside root.
func relativeToWorkspace(dir, root string) (string, bool) {
	rel := filepath.Clean(dir)
	if filepath.IsAbs(dir) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return "", false
		}
		rel, err = filepath.Rel(absRoot, dir)
		if err != nil {
			return "", false
		}
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
