package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedFiles(t *testing.T) {
	repoDir := t.TempDir()
	repo, err := git.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	commitFiles(t, wt, map[string]string{
		"kept.py":        "x = 1\n",
		"edited.py":      "y = 1\n",
		"removed.py":     "z = 1\n",
		"pkg/staged.py":  "a = 1\n",
		"docs/readme.md": "# docs\n",
	}, "base commit")

	writeFile(t, repoDir, "edited.py", "y = 2\n")
	writeFile(t, repoDir, "new.py", "print('new')\n")
	writeFile(t, repoDir, "notes.txt", "todo\n")
	writeFile(t, repoDir, "pkg/staged.py", "a = 2\n")
	if _, err := wt.Add("pkg/staged.py"); err != nil {
		t.Fatalf("add: %v", err)
	}
	require.NoError(t, os.Remove(filepath.Join(repoDir, "removed.py")))

	got, err := ChangedFiles(repoDir, []string{"py"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(repoDir, "edited.py"),
		filepath.Join(repoDir, "new.py"),
		filepath.Join(repoDir, "pkg", "staged.py"),
	}, got)

	all, err := ChangedFiles(filepath.Join(repoDir, "pkg"), nil)
	require.NoError(t, err)
	assert.Contains(t, all, filepath.Join(repoDir, "notes.txt"))
	assert.Len(t, all, 4)
}

func TestChangedFilesNotARepository(t *testing.T) {
	_, err := ChangedFiles(t.TempDir(), nil)
	assert.ErrorContains(t, err, "failed to open repository")
}

func TestHasExt(t *testing.T) {
	assert.True(t, hasExt("a.py", nil))
	assert.True(t, hasExt("a.PY", []string{".py"}))
	assert.True(t, hasExt("a.pyi", []string{"py", "pyi"}))
	assert.False(t, hasExt("a.txt", []string{"py"}))
}

func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	abs := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", abs, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", abs, err)
	}
}

func commitFiles(t *testing.T, wt *git.Worktree, files map[string]string, message string) plumbing.Hash {
	t.Helper()

	for path, content := range files {
		writeFile(t, wt.Filesystem.Root(), path, content)
		if _, err := wt.Add(path); err != nil {
			t.Fatalf("add %s: %v", path, err)
		}
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash
}
