package importer

import (
	"context"
	"sync"

	"media-studio/internal/logging"
	"media-studio/internal/mediatypes"
	"media-studio/internal/workers"
)

// File is one raw input to a batch import.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result pairs a batch input with its outcome.
type Result struct {
	Name string
	Item *mediatypes.MediaItem
	Err  error
}

// ImportAll imports many files through a bounded worker pool, preserving
// input order in the results. Per-file failures (unsupported types) are
// recorded in their Result and do not stop the batch.
func (im *Importer) ImportAll(ctx context.Context, files []File) []Result {
	if len(files) == 0 {
		return nil
	}

	numWorkers := workers.ForIO(len(files))
	logging.Debug("Batch import: %d files across %d workers", len(files), numWorkers)

	jobs := make(chan int)
	results := make([]Result, len(files))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f := files[i]
				item, err := im.Import(ctx, f.Name, f.ContentType, f.Data)
				results[i] = Result{Name: f.Name, Item: item, Err: err}
			}
		}()
	}

	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Mark everything not yet handed out as cancelled.
			for j := i; j < len(files); j++ {
				if results[j].Name == "" {
					results[j] = Result{Name: files[j].Name, Err: ctx.Err()}
				}
			}
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
