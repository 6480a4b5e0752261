package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases/books"
)

// FetchSummaryQueue is the queue name of FetchSummaryTask.
const FetchSummaryQueue = "fetch_book_summary"

// FetchSummaryTask refreshes the summary of one book from OpenLibrary.
type FetchSummaryTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for summary fetch tasks.
func (t FetchSummaryTask) Config() backlite.QueueConfig {
	return queueConfig(FetchSummaryQueue)
}

// SummaryFetcher runs the fetch-summary use case.
type SummaryFetcher interface {
	Execute(ctx context.Context, req books.GetBookByIDRequest) result.Result[*entities.Book]
}

// FetchSummaryProcessor creates a processor function for FetchSummaryTask.
// A book deleted since the task was queued is not retried.
func FetchSummaryProcessor(fetcher SummaryFetcher) backlite.QueueProcessor[FetchSummaryTask] {
	return func(ctx context.Context, task FetchSummaryTask) error {
		if fetcher == nil {
			return fmt.Errorf("summary fetcher not configured")
		}

		res := fetcher.Execute(ctx, books.GetBookByIDRequest{ID: task.BookID})
		if res.IsFailure() {
			if errors.Is(res.Failure(), entities.ErrBookNotFound) {
				log.Printf("[TASK] Book %s no longer exists, skipping summary fetch", task.BookID)
				return nil
			}
			return fmt.Errorf("fetch summary for book %s: %w", task.BookID, res.Failure())
		}

		book := res.Value()
		if book.Summary != nil {
			log.Printf("[TASK] Book %s (%s): summary stored", book.ID, book.Title)
		} else {
			log.Printf("[TASK] Book %s (%s): no summary found", book.ID, book.Title)
		}
		return nil
	}
}

// NewFetchSummaryQueue creates a backlite queue for summary fetch tasks.
func NewFetchSummaryQueue(fetcher SummaryFetcher) backlite.Queue {
	return backlite.NewQueue(FetchSummaryProcessor(fetcher))
}
