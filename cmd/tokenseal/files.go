package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// transform maps the contents of one input to the contents of its output.
type transform func(ctx context.Context, data []byte) ([]byte, error)

// fileResult represents the outcome of processing a single file.
type fileResult struct {
	Input  string
	Output string
	Size   int64
	Err    error
}

// processFiles applies fn to every file concurrently, writing each output
// atomically next to its input. Results are reported as they complete.
func (a *app) processFiles(ctx context.Context, w io.Writer, files []string, outPath func(string) (string, error), fn transform) error {
	results := make(chan fileResult, len(files))

	var group errgroup.Group
	group.SetLimit(max(a.opts.Parallel, 1))

	var processed, errored int

	done := make(chan struct{})

	go func() {
		defer close(done)

		for r := range results {
			if r.Err != nil {
				errored++
				a.log.WithField("file", r.Input).WithError(r.Err).Error("processing failed")

				continue
			}

			processed++
			a.log.WithFields(logrus.Fields{"file": r.Input, "bytes": r.Size}).Debug("processed")
			fmt.Fprintf(w, "%s -> %s\n", r.Input, r.Output)
		}
	}()

	for _, file := range files {
		group.Go(func() error {
			out, size, err := processFile(ctx, file, outPath, fn)
			results <- fileResult{Input: file, Output: out, Size: size, Err: err}

			return err
		})
	}

	err := group.Wait()

	close(results)
	<-done

	a.log.WithFields(logrus.Fields{"processed": processed, "errored": errored}).Debug("done")

	if err != nil {
		return fmt.Errorf("%d of %d files failed: %w", errored, len(files), err)
	}

	return nil
}

func processFile(ctx context.Context, file string, outPath func(string) (string, error), fn transform) (string, int64, error) {
	out, err := outPath(file)
	if err != nil {
		return "", 0, err
	}

	info, err := os.Stat(file)
	if err != nil {
		return "", 0, fmt.Errorf("getting file info for %q: %w", file, err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", 0, fmt.Errorf("reading %q: %w", file, err)
	}

	result, err := fn(ctx, data)
	if err != nil {
		return "", 0, err
	}

	if err := writeAtomic(out, result, info.Mode().Perm()); err != nil {
		return "", 0, err
	}

	return out, int64(len(result)), nil
}

// writeAtomic writes data to a temporary file in the target directory and
// renames it over path once fully written.
func writeAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	defer func() {
		tmp.Close()

		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %q: %w", tmp.Name(), err)
	}

	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %q: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming to %q: %w", path, err)
	}

	return nil
}
