package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"taskhub-backend/models"
	"taskhub-backend/services"
)

type taskWorld struct {
	*fixture
	owner, stranger *models.Admin
	assignee, other *models.User
	project         *models.Project
	task            *models.Task
}

func newTaskWorld(t *testing.T) *taskWorld {
	f := newFixture(t)
	w := &taskWorld{fixture: f}
	w.owner = f.admin(t, "boss@example.com")
	w.stranger = f.admin(t, "other@example.com")
	w.assignee = f.user(t, "Uma", "User", "uma@example.com", w.owner.ID)
	w.other = f.user(t, "Olly", "User", "olly@example.com", w.owner.ID)
	w.project = f.project(t, "Apollo", w.owner.ID)

	task, err := f.tasks.Create(f.ctx, services.TaskInput{
		Title:      "Fill the survey",
		FormSchema: datatypes.JSON(`[{"name":"q1","type":"text"}]`),
		ProjectID:  w.project.ID,
		AssignedTo: &w.assignee.ID,
	}, w.owner.ID)
	require.NoError(t, err)
	w.task = task
	return w
}

func adminPrincipal(a *models.Admin) services.Principal {
	return services.Principal{ID: a.ID, Email: a.Email, Role: services.RoleAdmin}
}

func userPrincipal(u *models.User) services.Principal {
	return services.Principal{ID: u.ID, Email: u.Email, Role: services.RoleUser}
}

func TestTaskCreate(t *testing.T) {
	w := newTaskWorld(t)
	assert.Equal(t, models.TaskStatusPending, w.task.Status)

	_, err := w.tasks.Create(w.ctx, services.TaskInput{Title: "x", ProjectID: 999}, w.owner.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))

	_, err = w.tasks.Create(w.ctx, services.TaskInput{Title: "x", ProjectID: w.project.ID}, w.stranger.ID)
	assert.True(t, services.IsKind(err, services.KindForbidden))
	assert.EqualError(t, err, "You can only add tasks to projects you created")

	_, err = w.tasks.Create(w.ctx, services.TaskInput{Title: "x", ProjectID: w.project.ID, AssignedTo: uintp(999)}, w.owner.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))

	todo := models.TaskStatusTodo
	task, err := w.tasks.Create(w.ctx, services.TaskInput{Title: "x", ProjectID: w.project.ID, Status: &todo}, w.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusTodo, task.Status)
}

func TestTaskFindAll_ScopedByRole(t *testing.T) {
	w := newTaskWorld(t)
	_, err := w.tasks.Create(w.ctx, services.TaskInput{Title: "Unassigned", ProjectID: w.project.ID}, w.owner.ID)
	require.NoError(t, err)

	own, err := w.tasks.FindAll(w.ctx, adminPrincipal(w.owner))
	require.NoError(t, err)
	assert.Len(t, own, 2)
	require.NotNil(t, own[0].Assignee)
	assert.Equal(t, w.assignee.ID, own[0].Assignee.ID)

	none, err := w.tasks.FindAll(w.ctx, adminPrincipal(w.stranger))
	require.NoError(t, err)
	assert.Empty(t, none)

	mine, err := w.tasks.FindAll(w.ctx, userPrincipal(w.assignee))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Project)
	assert.Equal(t, "Apollo", mine[0].Project.Name)
	assert.Nil(t, mine[0].Assignee)
}

func TestTaskUpdate_UserMayOnlyTouchStatusAndSubmission(t *testing.T) {
	w := newTaskWorld(t)
	done := models.TaskStatusDone

	_, err := w.tasks.Update(w.ctx, w.task.ID, services.TaskPatch{
		Status: &done,
		Title:  strp("Renamed"),
		Fields: []string{"status", "title"},
	}, userPrincipal(w.assignee))
	assert.True(t, services.IsKind(err, services.KindForbidden), "got %v", err)

	unchanged, err := w.tasks.FindOne(w.ctx, w.task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, unchanged.Status, "no partial apply")
	assert.Equal(t, "Fill the survey", unchanged.Title)

	updated, err := w.tasks.Update(w.ctx, w.task.ID, services.TaskPatch{
		Status:         &done,
		SubmissionData: datatypes.JSON(`{"q1":"yes"}`),
		Fields:         []string{"status", "submissionData"},
	}, userPrincipal(w.assignee))
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, updated.Status)
	assert.JSONEq(t, `{"q1":"yes"}`, string(updated.SubmissionData))
	assert.JSONEq(t, `[{"name":"q1","type":"text"}]`, string(updated.FormSchema))

	_, err = w.tasks.Update(w.ctx, w.task.ID, services.TaskPatch{
		Status: &done,
		Fields: []string{"status"},
	}, userPrincipal(w.other))
	assert.True(t, services.IsKind(err, services.KindForbidden))
}

func TestTaskUpdate_Admin(t *testing.T) {
	w := newTaskWorld(t)

	_, err := w.tasks.Update(w.ctx, w.task.ID, services.TaskPatch{
		Title:  strp("Nope"),
		Fields: []string{"title"},
	}, adminPrincipal(w.stranger))
	assert.True(t, services.IsKind(err, services.KindForbidden))

	foreign := w.fixture.project(t, "Mercury", w.stranger.ID)
	_, err = w.tasks.Update(w.ctx, w.task.ID, services.TaskPatch{
		ProjectID: &foreign.ID,
		Fields:    []string{"projectId"},
	}, adminPrincipal(w.owner))
	assert.True(t, services.IsKind(err, services.KindForbidden), "moving into a foreign project")
	assert.EqualError(t, err, "You can only move tasks to projects you created")

	second := w.fixture.project(t, "Gemini", w.owner.ID)
	updated, err := w.tasks.Update(w.ctx, w.task.ID, services.TaskPatch{
		Title:      strp("Renamed"),
		ProjectID:  &second.ID,
		AssignedTo: nil,
		Fields:     []string{"title", "projectId", "assignedTo"},
	}, adminPrincipal(w.owner))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, second.ID, updated.ProjectID)
	assert.Nil(t, updated.AssignedTo, "explicit null clears the assignee")
}

func TestTaskRemove(t *testing.T) {
	w := newTaskWorld(t)

	_, err := w.tasks.Remove(w.ctx, w.task.ID, w.stranger.ID)
	assert.True(t, services.IsKind(err, services.KindForbidden))

	removed, err := w.tasks.Remove(w.ctx, w.task.ID, w.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, w.task.ID, removed.ID)
	assert.Equal(t, "Fill the survey", removed.Title)

	_, err = w.tasks.Remove(w.ctx, w.task.ID, w.owner.ID)
	assert.True(t, services.IsKind(err, services.KindNotFound))
}

func TestScopedListingsCarryContext(t *testing.T) {
	w := newTaskWorld(t)
	ctx, cancel := context.WithCancel(w.ctx)
	cancel()

	_, err := w.tasks.FindAll(ctx, adminPrincipal(w.owner))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = w.projects.FindAll(ctx, w.assignee.ID, services.RoleUser)
	assert.ErrorIs(t, err, context.Canceled)
}
