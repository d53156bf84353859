package services

import (
	"net/http"
	"testing"

	"github.com/DevSujal/level-quest-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTaskApp(db *gorm.DB) *fiber.App {
	app := newTestApp()
	svc := NewTaskService(db)
	app.Post("/tasks/create", svc.CreateTask)
	app.Get("/tasks/user/:userId", svc.GetUserTasks)
	app.Get("/tasks/:taskId", svc.GetTaskByID)
	app.Put("/tasks/:taskId", svc.UpdateTask)
	app.Delete("/tasks/:taskId", svc.DeleteTask)
	app.Patch("/tasks/:taskId/complete", svc.CompleteTask)
	return app
}

func TestCreateTask(t *testing.T) {
	db := newTestDB(t)
	app := setupTaskApp(db)
	user := seedUser(t, db)

	status, env := doJSON(t, app, http.MethodPost, "/tasks/create", fiber.Map{
		"name":   "Read a chapter",
		"userId": user.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	var task models.Task
	decodeData(t, env, &task)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Read a chapter", task.Name)
	assert.False(t, task.IsCompleted)
}

func TestCreateTask_MissingFields(t *testing.T) {
	db := newTestDB(t)
	app := setupTaskApp(db)

	status, env := doJSON(t, app, http.MethodPost, "/tasks/create", fiber.Map{"name": "no user"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error.Errors)
}

func TestCompleteTask_PaysExperienceOnce(t *testing.T) {
	db := newTestDB(t)
	app := setupTaskApp(db)
	user := seedUser(t, db)

	task := models.Task{ID: uuid.NewString(), Name: "Workout", UserID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	status, env := doJSON(t, app, http.MethodPatch, "/tasks/"+task.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, status)

	var completed models.Task
	decodeData(t, env, &completed)
	assert.True(t, completed.IsCompleted)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 60, got.Exp)

	// Second completion is rejected and the bonus is not paid again.
	status, env = doJSON(t, app, http.MethodPatch, "/tasks/"+task.ID+"/complete", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "task already completed", env.Error.Message)

	got = reloadUser(t, db, user.ID)
	assert.Equal(t, 60, got.Exp)
}

func TestCompleteTask_NotFound(t *testing.T) {
	db := newTestDB(t)
	app := setupTaskApp(db)

	status, _ := doJSON(t, app, http.MethodPatch, "/tasks/"+uuid.NewString()+"/complete", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateTask_PartialFields(t *testing.T) {
	db := newTestDB(t)
	app := setupTaskApp(db)
	user := seedUser(t, db)

	task := models.Task{ID: uuid.NewString(), Name: "Old name", UserID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	status, env := doJSON(t, app, http.MethodPut, "/tasks/"+task.ID, fiber.Map{"name": "New name"})
	require.Equal(t, http.StatusOK, status)

	var updated models.Task
	decodeData(t, env, &updated)
	assert.Equal(t, "New name", updated.Name)
	assert.False(t, updated.IsCompleted)
}

func TestGetUserTasks(t *testing.T) {
	db := newTestDB(t)
	app := setupTaskApp(db)
	user := seedUser(t, db)
	other := seedUser(t, db)

	for _, name := range []string{"one", "two"} {
		require.NoError(t, db.Create(&models.Task{ID: uuid.NewString(), Name: name, UserID: user.ID}).Error)
	}
	require.NoError(t, db.Create(&models.Task{ID: uuid.NewString(), Name: "other", UserID: other.ID}).Error)

	status, env := doJSON(t, app, http.MethodGet, "/tasks/user/"+user.ID, nil)
	require.Equal(t, http.StatusOK, status)

	var tasks []models.Task
	decodeData(t, env, &tasks)
	assert.Len(t, tasks, 2)
}
