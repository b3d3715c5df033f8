// Package organizer moves the files directly inside a directory into
// category subfolders chosen by extension.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fenilsonani/folder-organizer/internal/category"
	"github.com/fenilsonani/folder-organizer/internal/logger"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/rs/zerolog"
)

// Options configures an Organizer
type Options struct {
	DryRun   bool
	Listener progress.Listener
	Logger   *zerolog.Logger

	// Ignore lists absolute paths that are never treated as file entries,
	// such as the run's own lock file
	Ignore []string
}

// Organizer classifies and relocates the regular files of a directory
type Organizer struct {
	dryRun   bool
	listener progress.Listener
	log      *zerolog.Logger
	ignore   map[string]bool

	// rename performs the relocation; swapped in tests to simulate failures
	rename func(src, dst string) error
}

// FileEntry is a regular file found directly inside the target directory
type FileEntry struct {
	Name string
	Size int64
}

// New creates an Organizer
func New(opts Options) *Organizer {
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}
	ignore := make(map[string]bool, len(opts.Ignore))
	for _, path := range opts.Ignore {
		ignore[filepath.Clean(path)] = true
	}
	return &Organizer{
		dryRun:   opts.DryRun,
		listener: opts.Listener,
		log:      log,
		ignore:   ignore,
		rename:   os.Rename,
	}
}

// EnsureCategoryFolders creates every category folder, plus Others, directly
// under dir. Folders that already exist are left alone. It returns the names
// of the folders it created.
func (o *Organizer) EnsureCategoryFolders(dir string) ([]string, error) {
	created := []string{}

	for _, name := range category.Names() {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err == nil {
			if !info.IsDir() {
				return created, fmt.Errorf("category folder %s exists and is not a directory", path)
			}
			continue
		}
		if !os.IsNotExist(err) {
			return created, fmt.Errorf("failed to check category folder %s: %w", path, err)
		}

		if err := os.Mkdir(path, 0755); err != nil {
			if os.IsExist(err) {
				continue
			}
			return created, fmt.Errorf("failed to create category folder %s: %w", path, err)
		}

		o.log.Debug().Str("folder", path).Msg("created category folder")
		created = append(created, name)
	}

	return created, nil
}

// missingFolders lists the category folders EnsureCategoryFolders would create
func (o *Organizer) missingFolders(dir string) ([]string, error) {
	missing := []string{}

	for _, name := range category.Names() {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return missing, fmt.Errorf("category folder %s exists and is not a directory", path)
		case err == nil:
		case os.IsNotExist(err):
			missing = append(missing, name)
		default:
			return missing, fmt.Errorf("failed to check category folder %s: %w", path, err)
		}
	}

	return missing, nil
}

// Organize moves every regular file directly inside dir into its category
// folder. The entry list is captured once, before any file is moved, so
// category folders and files added mid-run are never visited.
//
// A failed move is recorded in the returned Run and the scan continues.
// An error is returned only when the run cannot proceed: category folders
// cannot be created or dir cannot be listed. ctx is checked between files.
func (o *Organizer) Organize(ctx context.Context, dir string) (*Run, error) {
	run := newRun(dir, o.dryRun)

	o.log.Info().
		Str("run_id", run.ID).
		Str("directory", dir).
		Bool("dry_run", o.dryRun).
		Msg("starting organize run")

	var folders []string
	var err error
	if o.dryRun {
		folders, err = o.missingFolders(dir)
	} else {
		folders, err = o.EnsureCategoryFolders(dir)
	}
	for _, name := range folders {
		run.FoldersCreated = append(run.FoldersCreated, name)
		o.emit(progress.Event{Kind: progress.KindFolderCreated, Name: name, DryRun: o.dryRun})
	}
	if err != nil {
		run.finish()
		return run, err
	}

	entries, skipped, err := o.snapshot(dir)
	if err != nil {
		run.finish()
		return run, err
	}
	run.Skipped = skipped

	// Destinations already handed out in this run. Only needed in a dry
	// run, where planned files never land on disk.
	reserved := make(map[string]bool)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			run.finish()
			return run, fmt.Errorf("organize interrupted after %d of %d files: %w", i, len(entries), err)
		}

		result := o.moveFile(dir, entry, reserved)
		run.record(result)

		event := progress.Event{
			Name:   entry.Name,
			Size:   entry.Size,
			DryRun: o.dryRun,
			Index:  i + 1,
			Total:  len(entries),
		}
		if result.OK() {
			event.Kind = progress.KindFileMoved
			event.Category = result.Move.Category
			event.Destination = result.Move.Destination
		} else {
			event.Kind = progress.KindMoveFailed
			event.Category = result.Err.Category
			event.Err = result.Err
			o.log.Warn().Err(result.Err.Original).Str("file", entry.Name).Msg("move failed")
		}
		o.emit(event)
	}

	run.finish()
	o.emit(progress.Event{
		Kind:    progress.KindComplete,
		DryRun:  o.dryRun,
		Total:   len(entries),
		Elapsed: run.Duration(),
	})

	o.log.Info().
		Str("run_id", run.ID).
		Int("organized", run.Organized).
		Int("errors", len(run.Errors)).
		Dur("elapsed", run.Duration()).
		Msg("organize run complete")

	return run, nil
}

// snapshot lists the regular files directly inside dir. os.ReadDir sorts by
// name, which fixes the processing order. Directories and other non-regular
// entries are counted but not returned.
func (o *Organizer) snapshot(dir string) ([]FileEntry, int, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	entries := make([]FileEntry, 0, len(dirEntries))
	skipped := 0

	for _, de := range dirEntries {
		if de.IsDir() && category.IsCategoryFolder(de.Name()) {
			o.log.Debug().Str("folder", de.Name()).Msg("category folder left in place")
			skipped++
			continue
		}
		if !de.Type().IsRegular() {
			skipped++
			continue
		}
		if o.ignore[filepath.Join(dir, de.Name())] {
			o.log.Debug().Str("file", de.Name()).Msg("ignored file left in place")
			skipped++
			continue
		}

		entry := FileEntry{Name: de.Name()}
		if info, err := de.Info(); err == nil {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}

	o.log.Debug().Int("files", len(entries)).Int("skipped", skipped).Msg("directory snapshot taken")
	return entries, skipped, nil
}

// moveFile relocates one entry into its category folder, picking a free
// name when the destination is taken
func (o *Organizer) moveFile(dir string, entry FileEntry, reserved map[string]bool) MoveResult {
	cat := category.ClassifyName(entry.Name)
	destDir := filepath.Join(dir, cat)

	destName, err := uniqueName(destDir, entry.Name, reserved)
	if err != nil {
		moveErr := CategorizeError(entry.Name, err)
		moveErr.Category = cat
		return MoveResult{Err: moveErr}
	}

	src := filepath.Join(dir, entry.Name)
	dst := filepath.Join(destDir, destName)

	if !o.dryRun {
		if err := o.rename(src, dst); err != nil {
			moveErr := CategorizeError(entry.Name, err)
			moveErr.Category = cat
			return MoveResult{Err: moveErr}
		}
	}
	reserved[dst] = true

	o.log.Debug().Str("from", src).Str("to", dst).Msg("moved file")

	return MoveResult{Move: Move{
		Name:        entry.Name,
		Category:    cat,
		Destination: destName,
		Size:        entry.Size,
	}}
}

// uniqueName returns name if it is free in destDir, otherwise the first of
// stem_1ext, stem_2ext, ... that is
func uniqueName(destDir, name string, reserved map[string]bool) (string, error) {
	taken, err := nameTaken(destDir, name, reserved)
	if err != nil {
		return "", err
	}
	if !taken {
		return name, nil
	}

	stem := category.Stem(name)
	ext := category.Extension(name)

	for i := 1; ; i++ {
		candidate := stem + "_" + strconv.Itoa(i) + ext
		taken, err := nameTaken(destDir, candidate, reserved)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func nameTaken(destDir, name string, reserved map[string]bool) (bool, error) {
	path := filepath.Join(destDir, name)
	if reserved[path] {
		return true, nil
	}
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (o *Organizer) emit(e progress.Event) {
	if o.listener != nil {
		o.listener.Handle(e)
	}
}
