package downloadmgr

import (
	"context"
)

// Queue runs several independent downloads at the same time
type Queue struct {
	downloader *Downloader
	queue      []Request
	parallel   int
	// OnDone is called after every finished download (also failed ones)
	OnDone func(req Request, res *Result, err error)
}

// NewQueue creates a new Queue that runs at most parallel downloads at once
func NewQueue(d *Downloader, parallel int) *Queue {
	if parallel < 1 {
		parallel = 1
	}
	return &Queue{downloader: d, parallel: parallel}
}

// Add adds a new request to the queue
func (q *Queue) Add(req Request) {
	q.queue = append(q.queue, req)
}

type queueResult struct {
	index int
	res   *Result
	err   error
}

// Start downloads everything in the queue. Results are in queue order.
// All downloads run to completion, the first error is returned.
func (q *Queue) Start(ctx context.Context) ([]*Result, error) {
	if len(q.queue) == 0 {
		return nil, nil
	}

	sem := make(chan struct{}, q.parallel)
	done := make(chan queueResult, len(q.queue))

	go func() {
		for i, req := range q.queue {
			sem <- struct{}{}
			go func(i int, req Request) {
				defer func() { <-sem }()
				res, err := q.downloader.Download(ctx, req)
				done <- queueResult{i, res, err}
			}(i, req)
		}
	}()

	results := make([]*Result, len(q.queue))
	var firstErr error
	for range q.queue {
		r := <-done
		results[r.index] = r.res
		if q.OnDone != nil {
			q.OnDone(q.queue[r.index], r.res, r.err)
		}
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
	}
	return results, firstErr
}
