package conformance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FetchOptions locates a suite collection in a git repository.
type FetchOptions struct {
	// URL is anything go-git can clone, including a local path.
	URL string
	// Revision is resolved in the cloned repository. Defaults to HEAD.
	Revision string
	// CacheDir holds one checkout per resolved commit.
	CacheDir string
}

// FetchSuite clones opts.URL into the cache and returns the checkout
// directory for the resolved commit. Existing checkouts are reused.
func FetchSuite(ctx context.Context, opts FetchOptions) (string, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return "", errors.New("conformance: fetch requires a repository url")
	}
	if opts.CacheDir == "" {
		return "", errors.New("conformance: fetch requires a cache directory")
	}
	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return "", err
	}

	revision := strings.TrimSpace(opts.Revision)
	if revision == "" {
		revision = "HEAD"
	}
	if plumbing.IsHash(revision) {
		existing := checkoutDir(opts.CacheDir, url, revision)
		if _, err := os.Stat(existing); err == nil {
			return existing, nil
		}
	}

	tmpDir, err := os.MkdirTemp(opts.CacheDir, "fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("conformance: git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("conformance: resolve revision %s: %w", revision, err)
	}

	targetDir := checkoutDir(opts.CacheDir, url, hash.String())
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("conformance: git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return targetDir, nil
}

func checkoutDir(cacheDir, url, commit string) string {
	short := commit
	if len(short) > 12 {
		short = short[:12]
	}
	return filepath.Join(cacheDir, sanitizePathSegment(url)+"@"+short)
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	var b strings.Builder
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "suites"
	}
	return b.String()
}
