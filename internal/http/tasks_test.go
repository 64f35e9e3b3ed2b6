package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	enqueued   int
	enqueueErr error
	statuses   map[string]backlite.TaskStatus
}

func (q *fakeQueue) EnqueueCleanup() (string, error) {
	if q.enqueueErr != nil {
		return "", q.enqueueErr
	}
	q.enqueued++
	return "task-1", nil
}

func (q *fakeQueue) Status(_ context.Context, id string) (backlite.TaskStatus, error) {
	status, ok := q.statuses[id]
	if !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return status, nil
}

func TestTasksController_Cleanup(t *testing.T) {
	t.Run("disabled queue", func(t *testing.T) {
		env := setupRouter(t, nil)

		rr := env.do(t, http.MethodPost, "/api/admin/cleanup", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"error":"task queue is not enabled"}`, rr.Body.String())

		rr = env.do(t, http.MethodGet, "/api/admin/tasks/x", nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("enqueues a task", func(t *testing.T) {
		queue := &fakeQueue{}
		env := setupRouter(t, func(cfg *RouterConfig) { cfg.TaskQueue = queue })

		rr := env.do(t, http.MethodPost, "/api/admin/cleanup", nil)
		require.Equal(t, http.StatusAccepted, rr.Code)
		assert.JSONEq(t, `{"message":"cleanup task started","data":{"task_id":"task-1"}}`, rr.Body.String())
		assert.Equal(t, 1, queue.enqueued)
	})

	t.Run("enqueue failure is a 500", func(t *testing.T) {
		queue := &fakeQueue{enqueueErr: errors.New("queue closed")}
		env := setupRouter(t, func(cfg *RouterConfig) { cfg.TaskQueue = queue })

		rr := env.do(t, http.MethodPost, "/api/admin/cleanup", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "queue closed")
	})
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	queue := &fakeQueue{statuses: map[string]backlite.TaskStatus{
		"done":    backlite.TaskStatusSuccess,
		"waiting": backlite.TaskStatusPending,
	}}
	env := setupRouter(t, func(cfg *RouterConfig) { cfg.TaskQueue = queue })

	rr := env.do(t, http.MethodGet, "/api/admin/tasks/done", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":"done","status":"success"}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/admin/tasks/waiting", nil)
	assert.JSONEq(t, `{"id":"waiting","status":"pending"}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/admin/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, rr.Body.String())
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "running", taskStatusToString(backlite.TaskStatusRunning))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
}
