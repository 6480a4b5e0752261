package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/result"
)

// TasksController reports the progress of queued background work.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// TaskInfo represents basic information about a task.
type TaskInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

var errTaskNotFound = result.NewFailure(result.CodeNotFound, "Task not found")

// GetTaskStatus handles GET /tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respond.Failure(c, result.Unexpected(err))
		return
	}
	if status == backlite.TaskStatusNotFound {
		respond.Failure(c, errTaskNotFound)
		return
	}

	respond.Success(c, TaskInfo{ID: taskID, Status: taskStatusToString(status)})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
