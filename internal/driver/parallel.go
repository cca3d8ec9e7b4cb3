package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stylint/internal/config"
	"stylint/internal/diag"
	"stylint/internal/pipeline"
	"stylint/internal/source"
)

// Options configures a batch run.
type Options struct {
	Cfg      *config.Config
	Progress pipeline.ProgressSink
	Cache    *DiskCache
}

// ListFiles returns the sorted list of lintable files under dir, judged by
// the configured extensions. exclude entries are matched against both the
// base name and the slash path.
func ListFiles(dir string, cfg *config.Config, exclude []string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || excluded(path, exclude) {
				return fs.SkipDir
			}
			return nil
		}
		if cfg.KindFor(path) == source.KindOther {
			return nil
		}
		if excluded(path, exclude) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func excluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pat := range exclude {
		if pat == "" {
			continue
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, slashed); ok {
			return true
		}
		if strings.Contains(slashed, "/"+strings.Trim(pat, "/")+"/") {
			return true
		}
	}
	return false
}

// LintBatch lints the given files in parallel. Results come back in input
// order regardless of which worker finished first, with each bag already
// sorted by line.
func LintBatch(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	cfg := opts.Cfg
	fileSet := source.NewFileSetWithBase(cfg.Root)
	if len(paths) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))
	for _, path := range paths {
		fileID, err := fileSet.Load(path, cfg.KindFor(path))
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	flt := cfg.NewFilter()
	pipeline.EmitQueued(opts.Progress, paths)

	// Each worker writes only its own index, no mutex needed.
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			pipeline.Emit(opts.Progress, pipeline.Event{
				File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusWorking,
			})

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(cfg.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Category:   diag.CatRuntimeUndecodable,
					Message:    "failed to load file: " + loadErr.Error(),
					Path:       path,
					Line:       1,
					Confidence: diag.ConfidenceMax,
				})
				results[i] = FileResult{Path: path, Bag: bag, Skipped: true}
				pipeline.Emit(opts.Progress, pipeline.Event{
					File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusError, Err: loadErr,
				})
				return nil
			}

			file := fileSet.Get(fileIDs[path])

			if cached, ok := cacheLookup(opts.Cache, file, cfg); ok {
				results[i] = cached
			} else {
				results[i] = LintFile(file, cfg, flt)
				cacheStore(opts.Cache, file, cfg, results[i])
			}

			pipeline.Emit(opts.Progress, pipeline.Event{
				File: path, Stage: pipeline.StageCheck, Status: pipeline.StatusDone,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// Summarize folds batch results into a tally and reports whether any
// finding meets the fail threshold.
func Summarize(results []FileResult, mode diag.CountingMode, failAt diag.Confidence) (*diag.Tally, bool) {
	tally := diag.NewTally(mode)
	failed := false
	for _, res := range results {
		if res.Bag == nil {
			continue
		}
		for _, d := range res.Bag.Items() {
			tally.Count(d)
		}
		if res.Bag.HadReportable(failAt) {
			failed = true
		}
	}
	return tally, failed
}
