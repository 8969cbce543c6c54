// Package output writes rendered artifacts to disk through a synthfs
// pipeline, so a batch either lands completely or reports which file
// stopped it.
package output

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/mcgen/pkg/errors"
	"github.com/arthur-debert/mcgen/pkg/logging"
)

// DefaultMode is used for files without an explicit mode.
const DefaultMode fs.FileMode = 0644

// File is one artifact to write. Relative paths are resolved against the
// writer's directory.
type File struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Writer writes batches of files below a base directory.
type Writer struct {
	logger     zerolog.Logger
	dir        string
	force      bool
	filesystem synthfs.FileSystem
}

// NewWriter creates a writer rooted at dir. An empty dir means the
// working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{
		logger:     logging.GetLogger("output"),
		dir:        dir,
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// EnableForce lets the writer replace existing files.
func (w *Writer) EnableForce(force bool) *Writer {
	w.force = force
	return w
}

// WriteFiles writes files and returns their absolute paths in order.
func (w *Writer) WriteFiles(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		w.logger.Debug().Msg("No files to write")
		return nil, nil
	}

	targets := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	pipeline := synthfs.NewMemPipeline()

	for _, f := range files {
		target, err := w.resolve(f.Path)
		if err != nil {
			return nil, err
		}
		if seen[target] {
			return nil, errors.Newf(errors.ErrInvalidInput, "file %s listed twice", target)
		}
		seen[target] = true

		if err := w.clearTarget(target); err != nil {
			return nil, err
		}

		op, err := w.writeOperation(target, f)
		if err != nil {
			return nil, err
		}
		if err := pipeline.Add(op); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to add %s to pipeline", target)
		}
		targets = append(targets, target)
	}

	w.logger.Info().Int("fileCount", len(targets)).Msg("Writing files")
	done := logging.LogOperationStart(w.logger, "write-files")
	defer done()
	result := synthfs.NewExecutor().Run(ctx, pipeline, w.filesystem)
	if err := result.GetError(); err != nil {
		w.logger.Error().Err(err).Msg("Pipeline execution failed")
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to write files")
	}
	return targets, nil
}

// WriteFiles writes files below dir without replacing existing ones.
func WriteFiles(ctx context.Context, dir string, files []File) ([]string, error) {
	return NewWriter(dir).WriteFiles(ctx, files)
}

func (w *Writer) resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "file path is empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve path: %s", path)
	}
	return abs, nil
}

// clearTarget refuses existing targets unless force is set, in which case
// they are removed so the create operation validates.
func (w *Writer) clearTarget(target string) error {
	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot stat %s", target)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrFileWrite, "%s is a directory", target).WithDetail("path", target)
	}
	if !w.force {
		return errors.Newf(errors.ErrFileWrite, "%s already exists", target).WithDetail("path", target)
	}
	w.logger.Debug().Str("target", target).Msg("Removing existing file to allow overwrite")
	if err := os.Remove(target); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", target)
	}
	return nil
}

func (w *Writer) writeOperation(target string, f File) (synthfs.Operation, error) {
	mode := f.Mode
	if mode == 0 {
		mode = DefaultMode
	}

	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
	}

	w.logger.Debug().
		Str("target", target).
		Str("mode", mode.String()).
		Int("contentLen", len(f.Content)).
		Msg("Creating write file operation")

	op := operations.NewCreateFileOperation(core.OperationID(fmt.Sprintf("write-file-%s", target)), relPath)
	op.SetItem(&fileItem{path: relPath, content: f.Content, mode: mode})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }
