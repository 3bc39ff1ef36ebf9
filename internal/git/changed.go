package git

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ChangedFiles returns the files that are modified, added or untracked in the working tree of
// the repository containing repoPath. Deleted files are skipped. When exts is not empty only
// files with one of those extensions are returned. Paths are absolute and sorted.
func ChangedFiles(repoPath string, exts []string) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", repoPath, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}

	root := wt.Filesystem.Root()
	var changed []string
	for path, st := range status {
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if !hasExt(path, exts) {
			continue
		}
		changed = append(changed, filepath.Join(root, filepath.FromSlash(path)))
	}
	sort.Strings(changed)
	return changed, nil
}

func hasExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, want := range exts {
		if strings.EqualFold(ext, "."+strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}
