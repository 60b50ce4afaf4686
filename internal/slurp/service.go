package slurp

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/stage"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/storage"
)

var (
	// ErrStore marks failures talking to object storage.
	ErrStore = errors.New("store")

	ErrSizeMismatch     = errors.New("file sizes don't match")
	ErrChecksumMismatch = errors.New("CRC's don't match")
)

// Request contains input parameters for slurping one local file.
type Request struct {
	Source       string
	RunID        model.RunID
	RemoveSource bool
}

// Result describes where a slurped file went.
type Result struct {
	Staged      string // file: URI after the stage script
	Destination string // URI printed by the destination script
	Key         string // object key in the bucket
}

// Resolver runs a script with one line on stdin and returns its answer.
type Resolver interface {
	Resolve(ctx context.Context, script, line string) (string, error)
}

// ObjectStorage writes data streams to object storage.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data io.Reader, size int64) error
	Size(ctx context.Context, key string) (int64, error)
	CRC32(ctx context.Context, key string) (uint32, error)
	Move(ctx context.Context, from, to string) error
	Remove(ctx context.Context, key string) error
}

// Scripts names the commands a Service runs. Stage is optional.
type Scripts struct {
	Stage string
	Dest  string
}

// Options controls verification and what happens to the local file.
type Options struct {
	// Verify compares CRC-32 of the local file and the staging object.
	Verify bool
	// CompleteDir receives the local file after success unless it is removed.
	CompleteDir string
	// ErrorDir receives the local file after a failure.
	ErrorDir string
}

// Service orchestrates slurp steps: stage, resolve destination, store.
type Service struct {
	resolver      Resolver
	objectStorage ObjectStorage
	scripts       Scripts
	opts          Options
}

func NewService(resolver Resolver, objectStorage ObjectStorage, scripts Scripts, opts Options) *Service {
	return &Service{resolver: resolver, objectStorage: objectStorage, scripts: scripts, opts: opts}
}

func (s *Service) Slurp(ctx context.Context, req Request) (Result, error) {
	if err := req.RunID.Validate(); err != nil {
		return Result{}, err
	}

	local, err := filepath.Abs(req.Source)
	if err != nil {
		return Result{}, fmt.Errorf("resolve source: %w", err)
	}

	result, err := s.slurp(ctx, req, &local)
	if err != nil {
		if s.opts.ErrorDir != "" {
			s.quarantine(ctx, local)
		}
		return Result{}, err
	}

	switch {
	case req.RemoveSource:
		if err := os.Remove(local); err != nil {
			return Result{}, fmt.Errorf("remove source: %w", err)
		}
		slog.InfoContext(ctx, "source removed", "path", local)
	case s.opts.CompleteDir != "":
		if err := moveInto(local, s.opts.CompleteDir); err != nil {
			return Result{}, fmt.Errorf("move source to completed dir: %w", err)
		}
		slog.InfoContext(ctx, "source moved to completed dir", "path", local, "dir", s.opts.CompleteDir)
	}

	slog.InfoContext(ctx, "slurp complete", "key", result.Key, "run_id", req.RunID)
	return result, nil
}

// slurp runs the scripts and stores the file. local is updated when the
// stage script renames the file.
func (s *Service) slurp(ctx context.Context, req Request, local *string) (Result, error) {
	staged := model.SchemeFile.Prefix() + *local

	if s.scripts.Stage != "" {
		out, err := s.resolver.Resolve(ctx, s.scripts.Stage, staged)
		if err != nil {
			return Result{}, fmt.Errorf("stage: %w", err)
		}
		p, ok := model.SchemeFile.Strip(out)
		if !ok {
			return Result{}, fmt.Errorf("stage: %w", &stage.SchemeError{Input: out})
		}
		slog.InfoContext(ctx, "staging script returned new file", "old", staged, "new", out)
		staged, *local = out, p
	}

	dest, err := s.resolver.Resolve(ctx, s.scripts.Dest, staged)
	if err != nil {
		return Result{}, fmt.Errorf("resolve destination: %w", err)
	}
	key, err := storage.KeyFromURI(dest)
	if err != nil {
		return Result{}, fmt.Errorf("resolve destination: %w", err)
	}

	result := Result{Staged: staged, Destination: dest, Key: key.Key()}
	slog.DebugContext(ctx, "slurp started", "source", *local, "destination", dest, "key", result.Key, "run_id", req.RunID)

	if err := s.store(ctx, *local, result.Key, req.RunID); err != nil {
		return Result{}, err
	}
	return result, nil
}

// store uploads local to a staging key, checks it, and moves it to key,
// so readers of key never see a partial object. The staging object is
// removed on any failure.
func (s *Service) store(ctx context.Context, local, key string, runID model.RunID) error {
	f, err := os.Open(local)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &stage.PathError{Path: local}
		}
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	stagingKey := storage.StagingKey(runID, filepath.Base(local))
	slog.InfoContext(ctx, "copying to staging", "source", local, "staging_key", stagingKey, "size", info.Size())

	crc := crc32.NewIEEE()
	var body io.Reader = f
	if s.opts.Verify {
		body = io.TeeReader(f, crc)
	}

	if err := s.objectStorage.Put(ctx, stagingKey, body, info.Size()); err != nil {
		s.cleanup(ctx, stagingKey)
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	if err := s.check(ctx, stagingKey, info.Size(), crc.Sum32()); err != nil {
		s.cleanup(ctx, stagingKey)
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	slog.InfoContext(ctx, "moving staging object", "from", stagingKey, "to", key)
	if err := s.objectStorage.Move(ctx, stagingKey, key); err != nil {
		s.cleanup(ctx, stagingKey)
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

func (s *Service) check(ctx context.Context, stagingKey string, localSize int64, localCRC uint32) error {
	size, err := s.objectStorage.Size(ctx, stagingKey)
	if err != nil {
		return err
	}
	if size != localSize {
		return fmt.Errorf("%w, source = %d, dest = %d", ErrSizeMismatch, localSize, size)
	}
	slog.InfoContext(ctx, "sizes match", "size", size)

	if !s.opts.Verify {
		return nil
	}
	sum, err := s.objectStorage.CRC32(ctx, stagingKey)
	if err != nil {
		return err
	}
	if sum != localCRC {
		return fmt.Errorf("%w, local file is %d, stored file is %d", ErrChecksumMismatch, localCRC, sum)
	}
	slog.InfoContext(ctx, "CRCs match", "crc32", sum)
	return nil
}

func (s *Service) cleanup(ctx context.Context, stagingKey string) {
	if err := s.objectStorage.Remove(ctx, stagingKey); err != nil {
		slog.WarnContext(ctx, "failed to clean up staging object", "key", stagingKey, "error", err)
	}
}

// quarantine moves a failed source into the error dir. A source that is
// already gone is left alone.
func (s *Service) quarantine(ctx context.Context, local string) {
	if _, err := os.Lstat(local); err != nil {
		return
	}
	if err := moveInto(local, s.opts.ErrorDir); err != nil {
		slog.ErrorContext(ctx, "failed to move source to error dir", "path", local, "dir", s.opts.ErrorDir, "error", err)
		return
	}
	slog.InfoContext(ctx, "source moved to error dir", "path", local, "dir", s.opts.ErrorDir)
}

func moveInto(path, dir string) error {
	return os.Rename(path, filepath.Join(dir, filepath.Base(path)))
}
