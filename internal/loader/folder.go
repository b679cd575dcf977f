package loader

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
)

// DefaultWorkers is the pool size used when the caller passes zero or less.
const DefaultWorkers = 4

// Load reads dir with DefaultWorkers workers.
func Load(dir string) ([]domain.Series, error) {
	return LoadFolder(dir, DefaultWorkers)
}

// LoadFolder parses every "*.json" entry directly under dir on a pool of
// workers and concatenates the records in file listing order. The first
// file (in listing order) that fails to parse fails the whole load and no
// records are returned.
func LoadFolder(dir string, workers int) ([]domain.Series, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	files, err := listJSONFiles(dir)
	if err != nil {
		return nil, &domain.LoadError{Dir: dir, Err: err}
	}
	if len(files) == 0 {
		return []domain.Series{}, nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	// Index-addressed so completion order never leaks into the output.
	results := make([][]domain.Series, len(files))
	errs := make([]error, len(files))

	jobs := make(chan int)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var first error
			for idx := range jobs {
				results[idx], errs[idx] = parseFile(files[idx])
				if errs[idx] != nil && first == nil {
					first = errs[idx]
				}
			}
			return first
		})
	}

	for idx := range files {
		jobs <- idx
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		for _, perr := range errs {
			if perr != nil {
				return nil, &domain.LoadError{Dir: dir, Err: perr}
			}
		}
		return nil, &domain.LoadError{Dir: dir, Err: err}
	}
	return concat(results), nil
}

func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by filename.
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func parseFile(path string) ([]domain.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ParseError{Source: path, Err: err}
	}
	return ParseRecords(path, data)
}

func concat(parts [][]domain.Series) []domain.Series {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]domain.Series, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
