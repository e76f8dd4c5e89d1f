package handlers_test

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/vefforritun/verkefni-api/database"
	"github.com/vefforritun/verkefni-api/models"
)

// fakeStore is an in-memory Store so routes are tested without
// PostgreSQL. It returns database.ErrNotFound where the real store
// would, so handler translation is exercised for real.
type fakeStore struct {
	tasks     []models.Task
	taskTypes []models.TaskType
	taskTags  []models.TaskTag
	users     []models.User

	nextID    int
	lastLimit int

	insertedTasks []models.NewTask
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks:     []models.Task{},
		taskTypes: []models.TaskType{},
		taskTags:  []models.TaskTag{},
		users:     []models.User{},
		nextID:    1,
	}
}

func (f *fakeStore) id() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) addTaskType(name, description string) models.TaskType {
	taskType := models.TaskType{ID: f.id(), Name: name, Slug: slug.Make(name), Description: description}
	f.taskTypes = append(f.taskTypes, taskType)
	return taskType
}

func (f *fakeStore) addTaskTag(name string) models.TaskTag {
	taskTag := models.TaskTag{ID: f.id(), Name: name, Slug: slug.Make(name)}
	f.taskTags = append(f.taskTags, taskTag)
	return taskTag
}

func (f *fakeStore) addUser(name, username, hashedPassword string, admin bool) models.User {
	user := models.User{ID: f.id(), Name: name, Username: username, Password: hashedPassword, Admin: admin}
	f.users = append(f.users, user)
	return user
}

func (f *fakeStore) GetTasks(ctx context.Context, limit int) ([]models.Task, error) {
	f.lastLimit = limit
	return f.tasks, nil
}

func (f *fakeStore) GetTask(ctx context.Context, id int) (*models.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) InsertTask(ctx context.Context, task models.NewTask) (*models.Task, error) {
	f.insertedTasks = append(f.insertedTasks, task)

	created := models.Task{
		ID:          f.id(),
		Name:        task.Name,
		Description: task.Description,
		Date:        task.Date,
		UserID:      task.UserID,
	}
	for _, taskType := range f.taskTypes {
		if taskType.ID == task.TaskTypeID {
			created.TaskType = models.TaskRef{ID: taskType.ID, Name: taskType.Name}
		}
	}
	for _, taskTag := range f.taskTags {
		if taskTag.ID == task.TaskTagID {
			created.TaskTag = models.TaskRef{ID: taskTag.ID, Name: taskTag.Name}
		}
	}

	f.tasks = append(f.tasks, created)
	return &f.tasks[len(f.tasks)-1], nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, id int, fields []string, values []any) (*models.Task, error) {
	task, err := f.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	for i, field := range fields {
		if values[i] == nil {
			continue
		}
		switch field {
		case "name":
			task.Name = values[i].(string)
		case "description":
			task.Description = values[i].(string)
		}
	}
	return task, nil
}

func (f *fakeStore) DeleteTask(ctx context.Context, id int) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unable to delete task %d", id)
}

func (f *fakeStore) GetTaskTypes(ctx context.Context) ([]models.TaskType, error) {
	return f.taskTypes, nil
}

func (f *fakeStore) GetTaskType(ctx context.Context, taskTypeSlug string) (*models.TaskType, error) {
	for i := range f.taskTypes {
		if f.taskTypes[i].Slug == taskTypeSlug {
			return &f.taskTypes[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) InsertTaskType(ctx context.Context, name, description string) (*models.TaskType, error) {
	if _, err := f.GetTaskType(ctx, slug.Make(name)); err == nil {
		return nil, fmt.Errorf("unable to insert task type")
	}
	taskType := f.addTaskType(name, description)
	return &taskType, nil
}

func (f *fakeStore) UpdateTaskType(ctx context.Context, id int, fields []string, values []any) (*models.TaskType, error) {
	for i := range f.taskTypes {
		if f.taskTypes[i].ID != id {
			continue
		}
		for j, field := range fields {
			if values[j] == nil {
				continue
			}
			switch field {
			case "name":
				f.taskTypes[i].Name = values[j].(string)
			case "slug":
				f.taskTypes[i].Slug = values[j].(string)
			case "description":
				f.taskTypes[i].Description = values[j].(string)
			}
		}
		return &f.taskTypes[i], nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) DeleteTaskType(ctx context.Context, taskTypeSlug string) error {
	for i := range f.taskTypes {
		if f.taskTypes[i].Slug == taskTypeSlug {
			f.taskTypes = append(f.taskTypes[:i], f.taskTypes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unable to delete task type %q", taskTypeSlug)
}

func (f *fakeStore) GetTaskTags(ctx context.Context) ([]models.TaskTag, error) {
	return f.taskTags, nil
}

func (f *fakeStore) GetTaskTag(ctx context.Context, taskTagSlug string) (*models.TaskTag, error) {
	for i := range f.taskTags {
		if f.taskTags[i].Slug == taskTagSlug {
			return &f.taskTags[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) InsertTaskTag(ctx context.Context, name string) (*models.TaskTag, error) {
	if _, err := f.GetTaskTag(ctx, slug.Make(name)); err == nil {
		return nil, fmt.Errorf("unable to insert task tag")
	}
	taskTag := f.addTaskTag(name)
	return &taskTag, nil
}

func (f *fakeStore) UpdateTaskTag(ctx context.Context, id int, fields []string, values []any) (*models.TaskTag, error) {
	for i := range f.taskTags {
		if f.taskTags[i].ID != id {
			continue
		}
		for j, field := range fields {
			if values[j] == nil {
				continue
			}
			switch field {
			case "name":
				f.taskTags[i].Name = values[j].(string)
			case "slug":
				f.taskTags[i].Slug = values[j].(string)
			}
		}
		return &f.taskTags[i], nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) DeleteTaskTag(ctx context.Context, taskTagSlug string) error {
	for i := range f.taskTags {
		if f.taskTags[i].Slug == taskTagSlug {
			f.taskTags = append(f.taskTags[:i], f.taskTags[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unable to delete task tag %q", taskTagSlug)
}

func (f *fakeStore) GetUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) InsertUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	if _, err := f.GetUserByUsername(ctx, user.Username); err == nil {
		return nil, fmt.Errorf("unable to insert user")
	}
	created := f.addUser(user.Name, user.Username, user.Password, user.Admin)
	return &created, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id int) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unable to delete user %d", id)
}
