package backlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/taskscan/internal/fs"
)

// TaskFileName is matched case-insensitively.
const TaskFileName = "tasks.md"

// taskDirs are searched inside every repository, in this order.
var taskDirs = []string{"specs", ".specify"}

const specifyDir = ".specify"

// Source is one discovered task document.
type Source struct {
	Org  string
	Repo string
	Path string
}

// Project returns "{org}/{repo}".
func (s Source) Project() string {
	return s.Org + "/" + s.Repo
}

// Walker discovers task documents below a projects root laid out as
// {root}/{org}/{repo}/{specs,.specify}/**/tasks.md.
type Walker struct {
	fs  fs.FS
	log *log.Logger
}

// NewWalker returns a [Walker]. Panics if fsys or logger is nil.
func NewWalker(fsys fs.FS, logger *log.Logger) *Walker {
	if fsys == nil {
		panic("fs is nil")
	}

	if logger == nil {
		panic("logger is nil")
	}

	return &Walker{fs: fsys, log: logger}
}

// Walk returns all task documents below root in discovery order: orgs and
// repos by name, specs/ before .specify/, and inside those the files of a
// directory before its subdirectories.
//
// A missing root returns [ErrProjectsRootMissing]. Directories that cannot be
// read are recorded in stats and skipped.
func (w *Walker) Walk(root string, stats *Stats) ([]Source, error) {
	exists, err := w.fs.Exists(root)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProjectsRootMissing, root)
	}

	var sources []Source

	for _, org := range w.subdirs(root, stats) {
		orgDir := filepath.Join(root, org)

		for _, repo := range w.subdirs(orgDir, stats) {
			repoDir := filepath.Join(orgDir, repo)
			found := false

			for _, name := range taskDirs {
				dir := filepath.Join(repoDir, name)

				info, statErr := w.fs.Stat(dir)
				if statErr != nil {
					continue
				}

				found = true

				if !info.IsDir() {
					continue
				}

				for _, path := range w.walkTree(dir, stats) {
					sources = append(sources, Source{Org: org, Repo: repo, Path: path})
				}
			}

			if !found {
				w.log.Debug("no specs or .specify directory", "project", org+"/"+repo)
			}
		}
	}

	return sources, nil
}

// subdirs returns the names of the non-hidden directories in dir, following
// symlinks.
func (w *Walker) subdirs(dir string, stats *Stats) []string {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.log.Error("cannot read directory", "dir", dir, "err", err)
		stats.addError("Read error: %s: %v", dir, err)

		return nil
	}

	var names []string

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if !w.isDir(filepath.Join(dir, entry.Name()), entry) {
			continue
		}

		names = append(names, entry.Name())
	}

	return names
}

func (w *Walker) isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}

	info, err := w.fs.Stat(path)

	return err == nil && info.IsDir()
}

// walkTree returns task files below dir, top-down. Symlinked directories are
// not descended into; hidden directories are skipped except .specify.
func (w *Walker) walkTree(dir string, stats *Stats) []string {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		w.log.Error("cannot read directory", "dir", dir, "err", err)
		stats.addError("Read error: %s: %v", dir, err)

		return nil
	}

	var (
		files []string
		dirs  []string
	)

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if strings.HasPrefix(name, ".") && name != specifyDir {
				continue
			}

			dirs = append(dirs, path)

			continue
		}

		if w.isDir(path, entry) {
			continue
		}

		if strings.EqualFold(name, TaskFileName) {
			files = append(files, path)
		}
	}

	for _, sub := range dirs {
		files = append(files, w.walkTree(sub, stats)...)
	}

	return files
}
