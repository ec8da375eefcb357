package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/gemmascan/constants"
	"github.com/joseph-ayodele/gemmascan/internal/document"
)

// FileResult records a per-file collection failure.
type FileResult struct {
	Path string
	Err  string
}

// Stats aggregates one collection pass.
type Stats struct {
	Scanned uint32
	Matched uint32
	Loaded  uint32
	Failed  uint32
}

// CollectDocuments walks each path (file or directory), filters by the
// allowed extensions (defaults to pdf/jpg/jpeg/png), skips hidden entries if
// requested, and loads matching files as SourceDocuments. Unreadable files
// are per-file failures, never fatal.
func CollectDocuments(paths []string, includeExts []string, skipHidden bool) ([]document.SourceDocument, []FileResult, Stats, error) {
	if len(paths) == 0 {
		return nil, nil, Stats{}, errors.New("at least one path is required")
	}
	exts := buildExtSet(includeExts)

	var docs []document.SourceDocument
	var failures []FileResult
	var stats Stats

	load := func(path string) {
		stats.Matched++
		kind, ok := constants.MapExtToKind(filepath.Ext(path))
		if !ok {
			failures = append(failures, FileResult{Path: path, Err: "unsupported extension"})
			stats.Failed++
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			failures = append(failures, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return
		}
		docs = append(docs, document.SourceDocument{Name: filepath.Base(path), Kind: kind, Data: data})
		stats.Loaded++
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			failures = append(failures, FileResult{Path: root, Err: err.Error()})
			stats.Failed++
			continue
		}
		if !info.IsDir() {
			stats.Scanned++
			load(root)
			continue
		}
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			stats.Scanned++
			if walkErr != nil {
				failures = append(failures, FileResult{Path: path, Err: walkErr.Error()})
				stats.Failed++
				return nil // continue walking
			}
			if skipHidden && path != root && isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := exts[constants.NormalizeExt(filepath.Ext(path))]; !ok {
				return nil
			}
			load(path)
			return nil
		})
		if walkErr != nil {
			return docs, failures, stats, fmt.Errorf("walk %s: %w", root, walkErr)
		}
	}
	return docs, failures, stats, nil
}

func buildExtSet(includeExts []string) map[string]struct{} {
	if len(includeExts) == 0 {
		return constants.AllowedExtensions
	}
	exts := map[string]struct{}{}
	for _, e := range includeExts {
		if n := constants.NormalizeExt(strings.TrimSpace(e)); n != "" {
			exts[n] = struct{}{}
		}
	}
	return exts
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
