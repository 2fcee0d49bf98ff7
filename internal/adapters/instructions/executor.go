// Package instructions executes component file instructions against the
// destination tree.
package instructions

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/modforge/modforge/internal/core/domain"
	"github.com/modforge/modforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.InstructionExecutor. Copy sources are
// resolved against the component payload root, every other path against
// the destination tree.
type Executor struct {
	source string
	dest   string
	logger ports.Logger
}

// NewExecutor creates an executor for one installation run.
func NewExecutor(source, dest string, logger ports.Logger) *Executor {
	return &Executor{
		source: source,
		dest:   dest,
		logger: logger,
	}
}

// Execute runs the component's instructions in declaration order. The
// first failure stops execution and its exit code is returned.
func (e *Executor) Execute(
	ctx context.Context,
	component *domain.Component,
	_ []*domain.Component,
	fsp ports.FileSystemProvider,
) (domain.ExitCode, error) {
	if len(component.Instructions) == 0 {
		e.logger.Warn(fmt.Sprintf("component %q carries no instructions", component.Name))
		return domain.ExitSuccess, nil
	}

	for i := range component.Instructions {
		if err := ctx.Err(); err != nil {
			return domain.ExitUserCancelledInstall, zerr.Wrap(err, "installation cancelled")
		}

		ins := &component.Instructions[i]
		code, err := e.executeOne(ins, fsp)
		if err != nil {
			err = zerr.With(err, "component", component.Name)
			err = zerr.With(err, "instruction", string(ins.Kind))
			return code, err
		}
	}

	return domain.ExitSuccess, nil
}

func (e *Executor) executeOne(ins *domain.Instruction, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	switch ins.Kind {
	case domain.InstructionCopy:
		return e.copy(ins, fsp)
	case domain.InstructionMove:
		return e.move(ins, fsp)
	case domain.InstructionDelete:
		return e.delete(ins, fsp)
	case domain.InstructionMkDir:
		return e.mkdir(ins, fsp)
	default:
		return domain.ExitInvalidOperation, zerr.With(
			zerr.Wrap(domain.ErrUnknownInstruction, string(ins.Kind)), "kind", string(ins.Kind))
	}
}

// copy copies a file, or a directory tree, from the payload into the
// destination.
func (e *Executor) copy(ins *domain.Instruction, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	src := filepath.Join(e.source, filepath.FromSlash(ins.Source))

	dst, err := e.destPath(ins.Destination)
	if err != nil {
		return domain.ExitInvalidOperation, err
	}

	info, err := fsp.Stat(src)
	if err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "copy source missing")
	}

	if info.IsDir() {
		return e.copyTree(src, dst, fsp)
	}
	return e.copyFile(src, dst, fsp)
}

func (e *Executor) copyFile(src, dst string, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	data, err := fsp.ReadFile(src)
	if err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to read copy source")
	}

	if err := fsp.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to create destination directory")
	}

	if err := fsp.WriteFile(dst, data, domain.FilePerm); err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to write copy destination")
	}

	return domain.ExitSuccess, nil
}

func (e *Executor) copyTree(src, dst string, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	walkErr := fsp.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return fsp.MkdirAll(target, domain.DirPerm)
		}

		data, err := fsp.ReadFile(path)
		if err != nil {
			return err
		}
		return fsp.WriteFile(target, data, domain.FilePerm)
	})
	if walkErr != nil {
		return domain.ExitFileSystemError, zerr.Wrap(walkErr, "failed to copy directory")
	}

	return domain.ExitSuccess, nil
}

func (e *Executor) move(ins *domain.Instruction, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	src, err := e.destPath(ins.Source)
	if err != nil {
		return domain.ExitInvalidOperation, err
	}
	dst, err := e.destPath(ins.Destination)
	if err != nil {
		return domain.ExitInvalidOperation, err
	}

	if err := fsp.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to create destination directory")
	}

	if err := fsp.Rename(src, dst); err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to move file")
	}

	return domain.ExitSuccess, nil
}

func (e *Executor) delete(ins *domain.Instruction, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	target, err := e.destPath(ins.Destination)
	if err != nil {
		return domain.ExitInvalidOperation, err
	}

	// Refuse to delete the metadata directory out from under the run.
	if filepath.Base(target) == domain.ModforgeDirName {
		return domain.ExitInvalidOperation, zerr.With(domain.ErrUnknownInstruction, "path", ins.Destination)
	}

	if err := fsp.RemoveAll(target); err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to delete path")
	}

	return domain.ExitSuccess, nil
}

func (e *Executor) mkdir(ins *domain.Instruction, fsp ports.FileSystemProvider) (domain.ExitCode, error) {
	target, err := e.destPath(ins.Destination)
	if err != nil {
		return domain.ExitInvalidOperation, err
	}

	if err := fsp.MkdirAll(target, domain.DirPerm); err != nil {
		return domain.ExitFileSystemError, zerr.Wrap(err, "failed to create directory")
	}

	return domain.ExitSuccess, nil
}

// destPath resolves a manifest-relative path against the destination
// root, rejecting paths that escape it.
func (e *Executor) destPath(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(e.dest, filepath.FromSlash(rel)))

	relToDest, err := filepath.Rel(e.dest, cleaned)
	if err != nil || relToDest == ".." || strings.HasPrefix(relToDest, ".."+string(filepath.Separator)) {
		return "", zerr.New(fmt.Sprintf("instruction path escapes destination: %s", rel))
	}

	return cleaned, nil
}
