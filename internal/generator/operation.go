package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	)

// ErrFileExists is returned by WriteFileOp.Validate when the target exists
// and overwriting was not allowed.
var ErrFileExists = errors.New("file already exists")

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// must not touch the file system. force=true skips conflict checks.
//
// Execute performs the operation. It is only called after Validate succeeds.
//
// Description returns a human-readable description for output
// (e.g. "Write user_handler.go (812 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes Content to Path in a single call, replacing whatever
// is there.
//
// Validation behavior:
//   - Rejects nil content (empty is allowed)
//   - Reports ErrFileExists unless force=true
//
// Execution behavior:
//   - Writes the whole buffer with os.WriteFile using Mode
//   - Never creates directories; a missing parent is an error (pair with
//     MkdirOp for directories the caller owns)
type WriteFileOp struct {
	Path    string      // File path to write
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, op.Path)
		}
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.WriteFile(op.Path, op.Content, op.Mode); err != nil {
		return fmt.Errorf("writing %s: %w", op.Path, err)
	}

	return nil
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Path, len(op.Content))
}

// MkdirOp creates a directory and any missing parents.
type MkdirOp struct {
	Path string
	Mode fs.FileMode // defaults to 0755
}

func (op *MkdirOp) Validate(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if op.Path == "" {
		return errors.New("directory path is empty")
	}
	if info, err := os.Stat(op.Path); err == nil && !info.IsDir() {
		return fmt.Errorf("not a directory: %s", op.Path)
	}
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := op.Mode
	if mode == 0 {
		mode = 0755
	}
	if err := os.MkdirAll(op.Path, mode); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", op.Path, err)
	}
	return nil
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.Path)
}
