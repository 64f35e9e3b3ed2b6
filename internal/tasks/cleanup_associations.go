package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"
)

// AssociationSweeper removes quote-tag associations left behind by deletes.
type AssociationSweeper interface {
	DeleteDanglingAssociations(ctx context.Context) (int64, error)
}

type CleanupAssociationsTask struct{}

func (t CleanupAssociationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_associations",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func CleanupAssociationsProcessor(sweeper AssociationSweeper, logger *slog.Logger) backlite.QueueProcessor[CleanupAssociationsTask] {
	return func(ctx context.Context, task CleanupAssociationsTask) error {
		if sweeper == nil {
			return fmt.Errorf("association sweeper not configured")
		}

		removed, err := sweeper.DeleteDanglingAssociations(ctx)
		if err != nil {
			return fmt.Errorf("cleanup associations: %w", err)
		}

		logger.Info("removed dangling associations", "count", removed)
		return nil
	}
}

func NewCleanupAssociationsQueue(sweeper AssociationSweeper, logger *slog.Logger) backlite.Queue {
	return backlite.NewQueue(CleanupAssociationsProcessor(sweeper, logger))
}

// EnqueueCleanup schedules one sweep and returns the task ID.
func (c *Client) EnqueueCleanup() (string, error) {
	ids, err := c.Add(CleanupAssociationsTask{}).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue cleanup: %w", err)
	}
	return ids[0], nil
}
