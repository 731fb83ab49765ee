package services

import (
	"context"
	"strings"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/validators"
)

type TaskService struct {
	workspaceGate
	taskRepo        *repositories.TaskRepository
	activityService *ActivityService
}

func NewTaskService(
	taskRepo *repositories.TaskRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
	activityService *ActivityService,
) *TaskService {
	return &TaskService{
		workspaceGate:   workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		taskRepo:        taskRepo,
		activityService: activityService,
	}
}

func (ts *TaskService) GetTasks(ctx context.Context, workspaceID, actorID uint, status string) ([]*models.TaskResponse, []error) {
	if _, errors := ts.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	if status != "" && !enums.IsValidTaskStatus(status) {
		return nil, []error{errs.ErrInvalidTaskStatus}
	}

	tasks, err := ts.taskRepo.FindTasksByWorkspace(ctx, workspaceID, status)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, tasks[i].ToTaskResponse())
	}
	return responses, nil
}

func (ts *TaskService) CreateTask(ctx context.Context, workspaceID, actorID uint, body *models.TaskRequestBody) (*models.TaskResponse, []error) {
	workspace, errors := ts.authorize(ctx, workspaceID, actorID, access.Options{})
	if len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateTask(body, false); len(errors) > 0 {
		return nil, errors
	}

	task := &models.Task{
		Status:      enums.TASK_STATUS_TODO,
		Priority:    enums.TASK_PRIORITY_MEDIUM,
		WorkspaceID: workspaceID,
		CreatedByID: actorID,
	}
	if err := applyTaskBody(task, body, workspace); err != nil {
		return nil, []error{err}
	}

	created, err := ts.taskRepo.CreateTask(ctx, task)
	if err != nil {
		return nil, []error{err}
	}

	ts.activityService.Record(ctx, &models.Activity{
		WorkspaceID: workspaceID,
		Type:        enums.ACTIVITY_TASK_CREATED,
		UserID:      actorID,
		TargetID:    &created.ID,
		TargetModel: enums.TARGET_TASK,
		Metadata:    models.Metadata{"title": created.Title},
	})
	return created.ToTaskResponse(), nil
}

// findTask loads a task and authorizes the actor on its workspace. A non-zero workspaceID
// must match the task's workspace.
func (ts *TaskService) findTask(ctx context.Context, workspaceID, taskID, actorID uint, opts access.Options) (*models.Task, *models.Workspace, []error) {
	task, err := ts.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, []error{err}
	}
	if workspaceID != 0 && task.WorkspaceID != workspaceID {
		return nil, nil, []error{errs.ErrTaskNotFound}
	}
	workspace, errors := ts.authorize(ctx, task.WorkspaceID, actorID, opts)
	if len(errors) > 0 {
		return nil, nil, errors
	}
	return task, workspace, nil
}

func (ts *TaskService) GetTask(ctx context.Context, workspaceID, taskID, actorID uint) (*models.TaskResponse, []error) {
	task, _, errors := ts.findTask(ctx, workspaceID, taskID, actorID, access.Options{})
	if len(errors) > 0 {
		return nil, errors
	}
	return task.ToTaskResponse(), nil
}

func (ts *TaskService) UpdateTask(ctx context.Context, workspaceID, taskID, actorID uint, body *models.TaskRequestBody) (*models.TaskResponse, []error) {
	task, workspace, errors := ts.findTask(ctx, workspaceID, taskID, actorID, access.Options{})
	if len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateTask(body, true); len(errors) > 0 {
		return nil, errors
	}

	previousStatus := task.Status
	if err := applyTaskBody(task, body, workspace); err != nil {
		return nil, []error{err}
	}
	task.Assignee = nil
	task.CreatedBy = nil

	updated, err := ts.taskRepo.UpdateTask(ctx, task)
	if err != nil {
		return nil, []error{err}
	}

	activityType := enums.ACTIVITY_TASK_UPDATED
	if previousStatus != enums.TASK_STATUS_DONE && updated.Status == enums.TASK_STATUS_DONE {
		activityType = enums.ACTIVITY_TASK_COMPLETED
	}
	ts.activityService.Record(ctx, &models.Activity{
		WorkspaceID: updated.WorkspaceID,
		Type:        activityType,
		UserID:      actorID,
		TargetID:    &updated.ID,
		TargetModel: enums.TARGET_TASK,
		Metadata:    models.Metadata{"title": updated.Title, "status": updated.Status},
	})
	return updated.ToTaskResponse(), nil
}

func (ts *TaskService) DeleteTask(ctx context.Context, workspaceID, taskID, actorID uint) []error {
	task, _, errors := ts.findTask(ctx, workspaceID, taskID, actorID, access.Options{RequireAdmin: true})
	if len(errors) > 0 {
		return errors
	}
	if err := ts.taskRepo.DeleteTask(ctx, task.ID); err != nil {
		return []error{err}
	}
	return nil
}

// applyTaskBody copies the fields present in body onto task.
func applyTaskBody(task *models.Task, body *models.TaskRequestBody, workspace *models.Workspace) error {
	if body.AssigneeID != nil {
		if *body.AssigneeID == 0 {
			task.AssigneeID = nil
		} else if !access.IsMember(workspace, *body.AssigneeID) {
			return errs.ErrAssigneeNotInSpace
		} else {
			assignee := *body.AssigneeID
			task.AssigneeID = &assignee
		}
	}
	if body.Title != nil {
		task.Title = strings.TrimSpace(*body.Title)
	}
	if body.Description != nil {
		task.Description = *body.Description
	}
	if body.Status != nil {
		task.Status = *body.Status
	}
	if body.Priority != nil {
		task.Priority = *body.Priority
	}
	if body.DueDate != nil {
		task.DueDate = body.DueDate
	}
	if body.Labels != nil {
		task.Labels = body.Labels
	}
	if body.Attachments != nil {
		task.Attachments = body.Attachments
	}
	return nil
}
