package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	ErrNotGitRepo      = errors.New("not a git repository")
	ErrDirtyWorktree   = errors.New("local changes exist, fast-forward not possible")
	ErrNoRemote        = errors.New("no remote configured")
	ErrAlreadyUpToDate = errors.New("already up to date")
	ErrInvalidURL      = errors.New("invalid git URL")
)

// ValidateURL checks that a string looks like a usable git URL
func ValidateURL(url string) error {
	lowered := strings.ToLower(url)
	if strings.HasPrefix(lowered, "https://") || strings.HasPrefix(lowered, "git@") || strings.HasPrefix(lowered, "git://") {
		return nil
	}
	return fmt.Errorf("%w: must start with https://, git@, or git://", ErrInvalidURL)
}

// NormalizeURL ensures the URL carries a .git suffix
func NormalizeURL(url string) string {
	if strings.HasSuffix(url, ".git") {
		return url
	}
	return url + ".git"
}

// PackageName derives a community-folder name from a git URL
func PackageName(gitURL string) string {
	name := strings.TrimSuffix(gitURL, ".git")
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	for _, suffix := range []string{"-master", "-main", "-trunk"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// Clone clones a package repository into the community folder.
// progress can be nil to disable progress output.
func Clone(ctx context.Context, url, destPath string, progress io.Writer) error {
	_, err := git.PlainCloneContext(ctx, destPath, false, &git.CloneOptions{
		URL:      url,
		Progress: progress,
	})
	if err != nil {
		return fmt.Errorf("cannot clone repository: %w", err)
	}
	return nil
}

// Update fast-forwards an installed package to its remote. A dirty worktree
// refuses the update rather than discarding local changes.
func Update(ctx context.Context, repoPath string, progress io.Writer) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotGitRepo, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("cannot get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("cannot get worktree status: %w", err)
	}
	if !status.IsClean() {
		return ErrDirtyWorktree
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Progress:   progress,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("cannot fetch: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("cannot get HEAD: %w", err)
	}

	remoteRef, err := remoteReference(repo, head)
	if err != nil {
		return err
	}

	if head.Hash() == remoteRef.Hash() {
		return ErrAlreadyUpToDate
	}

	if err := worktree.Reset(&git.ResetOptions{
		Commit: remoteRef.Hash(),
		Mode:   git.HardReset,
	}); err != nil {
		return fmt.Errorf("cannot fast-forward: %w", err)
	}
	return nil
}

// remoteReference resolves the origin counterpart of HEAD, falling back to
// the common default branch names when HEAD's branch has no remote twin
func remoteReference(repo *git.Repository, head *plumbing.Reference) (*plumbing.Reference, error) {
	candidates := []string{head.Name().Short(), "main", "master"}
	for _, branch := range candidates {
		ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
		if err == nil {
			return ref, nil
		}
	}
	return nil, fmt.Errorf("cannot find remote branch for %s", head.Name().Short())
}

// IsRepo reports whether a directory is a git repository
func IsRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// RemoteURL returns the origin URL of an installed package
func RemoteURL(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", ErrNotGitRepo
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", ErrNoRemote
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoRemote
	}
	return urls[0], nil
}

// CleanupFailedClone removes the leftovers of a clone that did not complete.
// Valid repositories are left alone.
func CleanupFailedClone(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if IsRepo(path) {
		return nil
	}
	return os.RemoveAll(path)
}
