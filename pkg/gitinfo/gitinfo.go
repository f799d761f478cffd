// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gitinfo

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned by Open when the directory is not inside
// a git working tree
var ErrNotRepository = errors.New("not a git repository")

// Info defines the git attributes of a file
type Info struct {
	// LastUpdated is the committer time of the latest commit touching the file
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	// Contributors are the commit authors, most commits first
	Contributors []Contributor `json:"contributors,omitempty"`
}

// Contributor is a commit author of a file
type Contributor struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Commits int    `json:"commits"`
}

// Repository reads file history from a local git repository
type Repository struct {
	mu   sync.Mutex
	repo *gogit.Repository
	root string
}

// Open opens the repository enclosing dir
func Open(dir string) (*Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &Repository{repo: repo, root: root}, nil
}

// Root returns the working tree root
func (r *Repository) Root() string {
	return r.root
}

// FileInfo returns the history attributes of the file at path. Files
// without history yield a zero Info.
func (r *Repository) FileInfo(path string) (Info, error) {
	rel, err := r.relative(path)
	if err != nil {
		return Info{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	iter, err := r.repo.Log(&gogit.LogOptions{
		Order:    gogit.LogOrderCommitterTime,
		FileName: &rel,
	})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Info{}, nil
		}
		return Info{}, fmt.Errorf("failed to read history of %s: %w", rel, err)
	}
	defer iter.Close()

	var (
		info    Info
		byEmail = map[string]*Contributor{}
	)
	err = iter.ForEach(func(c *object.Commit) error {
		if info.LastUpdated == nil || c.Committer.When.After(*info.LastUpdated) {
			when := c.Committer.When
			info.LastUpdated = &when
		}
		key := strings.ToLower(c.Author.Email)
		if contributor, ok := byEmail[key]; ok {
			contributor.Commits++
			return nil
		}
		byEmail[key] = &Contributor{Name: c.Author.Name, Email: c.Author.Email, Commits: 1}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return Info{}, fmt.Errorf("failed to read history of %s: %w", rel, err)
	}
	for _, c := range byEmail {
		info.Contributors = append(info.Contributors, *c)
	}
	sort.Slice(info.Contributors, func(i, j int) bool {
		a, b := info.Contributors[i], info.Contributors[j]
		if a.Commits != b.Commits {
			return a.Commits > b.Commits
		}
		return a.Name < b.Name
	})
	return info, nil
}

func (r *Repository) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside of the repository %s", path, r.root)
	}
	return filepath.ToSlash(rel), nil
}
