package backlog

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/taskscan/internal/fs"
)

// ScannerOptions configures a [Scanner].
type ScannerOptions struct {
	// Root is the directory [Task.File] paths are relative to.
	Root string

	// ProjectsDir is the projects root to walk.
	ProjectsDir string

	// FS defaults to [fs.NewReal].
	FS fs.FS

	// Logger defaults to a logger that discards output.
	Logger *log.Logger

	// Now defaults to [time.Now]. It only feeds [Backlog.GeneratedAt].
	Now func() time.Time
}

// Scanner aggregates all task documents below a projects root.
type Scanner struct {
	root     string
	projects string
	fs       fs.FS
	log      *log.Logger
	now      func() time.Time
}

// NewScanner returns a [Scanner] for opts.
func NewScanner(opts ScannerOptions) *Scanner {
	s := &Scanner{
		root:     opts.Root,
		projects: opts.ProjectsDir,
		fs:       opts.FS,
		log:      opts.Logger,
		now:      opts.Now,
	}

	if s.fs == nil {
		s.fs = fs.NewReal()
	}

	if s.log == nil {
		s.log = log.New(io.Discard)
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

// Scan walks the projects root and parses every task document it finds.
//
// The returned [Stats] are valid whenever Scan got past the projects root
// check, including when it returns [ErrNoTaskFiles]. Files that cannot be
// read or are not valid UTF-8 are recorded in the stats and skipped. ctx is
// checked between files.
func (s *Scanner) Scan(ctx context.Context) (*Backlog, *Stats, error) {
	stats := &Stats{}

	s.log.Info("starting task scan", "projects", s.projects)

	sources, err := NewWalker(s.fs, s.log).Walk(s.projects, stats)
	if err != nil {
		s.log.Error("cannot walk projects", "projects", s.projects, "err", err)

		return nil, nil, err
	}

	ids := NewAssigner()
	items := []Task{}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		s.log.Info("scanning", "project", src.Project(), "file", filepath.Base(src.Path))

		items = append(items, s.scanFile(src, ids, stats)...)
	}

	if stats.FilesScanned == 0 {
		return nil, stats, ErrNoTaskFiles
	}

	return &Backlog{GeneratedAt: s.now(), Items: items}, stats, nil
}

func (s *Scanner) scanFile(src Source, ids *Assigner, stats *Stats) []Task {
	rel := s.relative(src.Path)

	data, err := s.fs.ReadFile(src.Path)
	if err != nil {
		s.log.Error("failed to read", "file", rel, "err", err)
		stats.addError("Read error: %s: %v", rel, err)

		return nil
	}

	if !utf8.Valid(data) {
		s.log.Error("encoding error", "file", rel)
		stats.addError("Encoding error: %s", rel)

		return nil
	}

	stats.FilesScanned++

	tasks := Parse(Document{
		Org:  src.Org,
		Repo: src.Repo,
		File: rel,
		Text: string(data),
	}, ids, func(t Task) {
		stats.DuplicateIDs++
		s.log.Warn("uid already taken, disambiguated", "uid", t.UID, "file", t.File, "line", t.Line)
	})

	for _, t := range tasks {
		stats.addTask(t.Status)
	}

	return tasks
}

// relative returns path relative to the scan root with forward slashes, or
// the absolute path when it is not below the root.
func (s *Scanner) relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if s.root != "" {
		rootAbs, rootErr := filepath.Abs(s.root)
		if rootErr == nil {
			rel, relErr := filepath.Rel(rootAbs, abs)
			if relErr == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return filepath.ToSlash(rel)
			}
		}
	}

	return filepath.ToSlash(abs)
}
