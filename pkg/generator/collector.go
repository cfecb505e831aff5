package generator

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"github.com/travigo/timetable-maker/pkg/util"
)

type ArrivalLister interface {
	ListArrivals(ctx context.Context, line ctdf.SelectedLine, stopCode int, day time.Time) ([]ctdf.ScheduledArrival, error)
}

// RequestError is one failed (day, line) request. It never aborts the rest of the batch.
type RequestError struct {
	Line string
	Day  time.Time
	Err  error
}

func (e RequestError) Error() string {
	return fmt.Sprintf("line %s on %s: %s", e.Line, util.DateKey(e.Day), e.Err)
}

func (e RequestError) Unwrap() error {
	return e.Err
}

type CollectResult struct {
	// Arrivals are in day then line request order
	Arrivals  []ctdf.ScheduledArrival
	Errors    []RequestError
	Completed int
	Total     int
}

type Collector struct {
	Lister  ArrivalLister
	Workers int
}

type arrivalRequest struct {
	line ctdf.SelectedLine
	day  time.Time
}

type requestOutcome struct {
	arrivals []ctdf.ScheduledArrival
	err      *RequestError
}

// Percent is round(100 * completed / total). An empty batch is complete.
func Percent(completed int, total int) int {
	if total == 0 {
		return 100
	}

	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Collect requests the arrivals of every line of group for every day. Lines without a stop count towards
// the total but are not requested. onProgress may be nil, it is called with non-decreasing percentages.
func (c *Collector) Collect(ctx context.Context, group ctdf.LineGroup, days []time.Time, onProgress func(percent int)) CollectResult {
	requests := make([]arrivalRequest, 0, len(days)*len(group.Lines))
	for _, day := range days {
		for _, line := range group.Lines {
			requests = append(requests, arrivalRequest{line: line, day: day})
		}
	}

	outcomes := make([]requestOutcome, len(requests))
	completed := 0
	var progressMutex sync.Mutex

	reportCompletion := func() {
		progressMutex.Lock()
		defer progressMutex.Unlock()

		completed++
		if onProgress != nil {
			onProgress(Percent(completed, len(requests)))
		}
	}

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	p := pool.New()
	p.WithMaxGoroutines(workers)

	for index, request := range requests {
		p.Go(func() {
			defer reportCompletion()

			if !request.line.HasStop() {
				log.Debug().Str("line", request.line.ShortName).Msg("Skipping line without a stop")
				return
			}

			arrivals, err := c.Lister.ListArrivals(ctx, request.line, request.line.SelectedStop.Code, request.day)
			if err != nil {
				outcomes[index].err = &RequestError{Line: request.line.ShortName, Day: request.day, Err: err}
				return
			}

			outcomes[index].arrivals = arrivals
		})
	}
	p.Wait()

	result := CollectResult{
		Arrivals:  []ctdf.ScheduledArrival{},
		Completed: completed,
		Total:     len(requests),
	}
	for _, outcome := range outcomes {
		result.Arrivals = append(result.Arrivals, outcome.arrivals...)
		if outcome.err != nil {
			result.Errors = append(result.Errors, *outcome.err)
		}
	}

	if len(requests) == 0 && onProgress != nil {
		onProgress(100)
	}

	log.Debug().
		Int("requests", result.Total).
		Int("arrivals", len(result.Arrivals)).
		Int("errors", len(result.Errors)).
		Msg("Collected arrivals")

	return result
}
