package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/oy3o/efx"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/spf13/cobra"
)

var (
	jobs         int
	keepMismatch bool
)

func newRoundtripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <file|dir>...",
		Short: "Decode and re-encode every .efx file, reporting files that do not rebuild bit for bit",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRoundtrip,
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files checked in parallel")
	cmd.Flags().BoolVar(&keepMismatch, "keep-mismatch", false, "Write rebuilt bytes next to files that do not match, as <file>.rebuilt")
	return cmd
}

// collectFiles expands directories into the .efx files below them.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".efx") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}

type roundtripStats struct {
	passed   *xsync.Counter
	failures *xsync.Map[string, error]
}

// roundtripFile parses path, rebuilds it and compares the result with the input.
func roundtripFile(path string, opts []efx.ReadOption, log hclog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := efx.Parse(data, opts...)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	rebuilt, err := efx.Build(f, efx.WithWriteLogger(log))
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if bytes.Equal(data, rebuilt) {
		return nil
	}
	if keepMismatch {
		if err := os.WriteFile(path+".rebuilt", rebuilt, 0o644); err != nil {
			log.Warn("could not keep rebuilt file", "path", path, "error", err)
		}
	}
	return fmt.Errorf("rebuilt file differs at offset %d (%d bytes in, %d bytes out)",
		firstDifference(data, rebuilt), len(data), len(rebuilt))
}

func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	log := newLogger()
	opts, err := readOptions(log)
	if err != nil {
		return err
	}
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	log.Info("checking files", "count", len(files), "jobs", jobs)

	stats := roundtripStats{
		passed:   xsync.NewCounter(),
		failures: xsync.NewMap[string, error](),
	}
	paths := make(chan string)
	var wg sync.WaitGroup
	for range max(jobs, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				if err := roundtripFile(path, opts, log.With("file", path)); err != nil {
					stats.failures.Store(path, err)
					continue
				}
				stats.passed.Inc()
			}
		}()
	}
	for _, path := range files {
		paths <- path
	}
	close(paths)
	wg.Wait()

	var failed []string
	stats.failures.Range(func(path string, _ error) bool {
		failed = append(failed, path)
		return true
	})
	slices.Sort(failed)
	out := cmd.OutOrStdout()
	for _, path := range failed {
		err, _ := stats.failures.Load(path)
		fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
	}
	fmt.Fprintf(out, "%d passed, %d failed\n", stats.passed.Value(), len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to round-trip", len(failed), len(files))
	}
	return nil
}
