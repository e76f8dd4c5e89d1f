package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/vefforritun/verkefni-api/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestParseDate(t *testing.T) {
	valid := []string{
		"2024-02-11T19:01:00Z",
		"2024-02-11T19:01:00",
		"2024-02-11T19:01",
		"2024-02-11",
	}
	for _, value := range valid {
		if _, err := ParseDate(value); err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", value, err)
		}
	}

	invalid := []string{"", "not a date", "2024-13-40", "11/02/2024"}
	for _, value := range invalid {
		if _, err := ParseDate(value); err == nil {
			t.Errorf("ParseDate(%q) expected error", value)
		}
	}
}

func TestRequiredString(t *testing.T) {
	run := func(value *string) []Failure {
		return RequiredString("name", value, 8).Run(context.Background())
	}

	if failures := run(nil); len(failures) != 1 {
		t.Error("missing value should fail")
	}
	if failures := run(strPtr("   ")); len(failures) != 1 {
		t.Error("blank value should fail")
	}
	if failures := run(strPtr("too long for sure")); len(failures) != 1 {
		t.Error("overlong value should fail")
	}
	if failures := run(strPtr("ok")); failures != nil {
		t.Errorf("valid value should pass, got %v", failures)
	}
}

func TestOptionalString(t *testing.T) {
	if failures := OptionalString("description", nil, 8).Run(context.Background()); failures != nil {
		t.Errorf("absent optional value should pass, got %v", failures)
	}
	if failures := OptionalString("description", strPtr("too long for sure"), 8).Run(context.Background()); len(failures) != 1 {
		t.Error("overlong optional value should fail")
	}
}

func TestValidDate(t *testing.T) {
	if failures := ValidDate("date", nil, false).Run(context.Background()); len(failures) != 1 {
		t.Error("missing required date should fail")
	}
	if failures := ValidDate("date", nil, true).Run(context.Background()); failures != nil {
		t.Errorf("missing optional date should pass, got %v", failures)
	}
	if failures := ValidDate("date", strPtr("garbage"), true).Run(context.Background()); len(failures) != 1 {
		t.Error("malformed optional date should still fail")
	}
}

func TestAtLeastOneOf(t *testing.T) {
	fields := []string{"name", "task_type_id"}

	failures := AtLeastOneOf(fields, (*string)(nil), (*int)(nil)).Run(context.Background())
	if len(failures) != 1 {
		t.Fatal("all absent should fail")
	}
	if failures[0].Message != "require at least one value of: name, task_type_id" {
		t.Errorf("unexpected message %q", failures[0].Message)
	}

	if failures := AtLeastOneOf(fields, (*string)(nil), intPtr(2)).Run(context.Background()); failures != nil {
		t.Errorf("one present should pass, got %v", failures)
	}
}

// fakeStore implements Store for the referential and uniqueness rules.
type fakeStore struct {
	taskTypes []models.TaskType
	taskTags  []models.TaskTag
	users     []models.User
	err       error
}

func (f *fakeStore) GetTaskTypes(ctx context.Context) ([]models.TaskType, error) {
	return f.taskTypes, f.err
}

func (f *fakeStore) GetTaskTags(ctx context.Context) ([]models.TaskTag, error) {
	return f.taskTags, f.err
}

func (f *fakeStore) GetUsers(ctx context.Context) ([]models.User, error) {
	return f.users, f.err
}

func (f *fakeStore) GetTaskType(ctx context.Context, slug string) (*models.TaskType, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.taskTypes {
		if f.taskTypes[i].Slug == slug {
			return &f.taskTypes[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeStore) GetTaskTag(ctx context.Context, slug string) (*models.TaskTag, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.taskTags {
		if f.taskTags[i].Slug == slug {
			return &f.taskTags[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, errors.New("not found")
}

func TestTaskTypeIDExists(t *testing.T) {
	rules := NewRules(&fakeStore{taskTypes: []models.TaskType{{ID: 7, Name: "Bug", Slug: "bug"}}})

	if failures := rules.TaskTypeIDExists("task_type_id", intPtr(7)).Run(context.Background()); failures != nil {
		t.Errorf("existing id should pass, got %v", failures)
	}
	if failures := rules.TaskTypeIDExists("task_type_id", intPtr(8)).Run(context.Background()); len(failures) != 1 {
		t.Error("unknown id should fail")
	}
	if failures := rules.TaskTypeIDExists("task_type_id", nil).Run(context.Background()); len(failures) != 1 {
		t.Error("absent id should fail")
	}
}

func TestTaskTypeIDExistsFailsOpenOnLookupError(t *testing.T) {
	rules := NewRules(&fakeStore{
		taskTypes: []models.TaskType{{ID: 7, Name: "Bug", Slug: "bug"}},
		err:       errors.New("pool exhausted"),
	})

	// A lookup error counts as "does not exist": the request is rejected
	// even for an id that would otherwise resolve.
	if failures := rules.TaskTypeIDExists("task_type_id", intPtr(7)).Run(context.Background()); len(failures) != 1 {
		t.Error("lookup error should reject the reference")
	}
}

func TestUserIDExists(t *testing.T) {
	rules := NewRules(&fakeStore{users: []models.User{{ID: 3, Username: "gisli"}}})

	if failures := rules.UserIDExists("user_id", intPtr(3)).Run(context.Background()); failures != nil {
		t.Errorf("existing id should pass, got %v", failures)
	}
	if failures := rules.UserIDExists("user_id", intPtr(4)).Run(context.Background()); len(failures) != 1 {
		t.Error("unknown id should fail")
	}
}

func TestTaskTypeSlugAvailable(t *testing.T) {
	rules := NewRules(&fakeStore{taskTypes: []models.TaskType{{ID: 1, Name: "Bug Fix", Slug: "bug-fix"}}})

	failures := rules.TaskTypeSlugAvailable("name", strPtr("Bug Fix")).Run(context.Background())
	if len(failures) != 1 {
		t.Fatal("taken slug should fail")
	}
	if failures[0].Kind != Conflict {
		t.Errorf("expected Conflict kind, got %v", failures[0].Kind)
	}

	if failures := rules.TaskTypeSlugAvailable("name", strPtr("Infra")).Run(context.Background()); failures != nil {
		t.Errorf("free slug should pass, got %v", failures)
	}
}

func TestTaskTypeSlugAvailableFailsOpenOnLookupError(t *testing.T) {
	rules := NewRules(&fakeStore{
		taskTypes: []models.TaskType{{ID: 1, Name: "Bug Fix", Slug: "bug-fix"}},
		err:       errors.New("pool exhausted"),
	})

	// Uniqueness cannot be proven without the store, so the rule passes
	// and the unique constraint is the backstop.
	if failures := rules.TaskTypeSlugAvailable("name", strPtr("Bug Fix")).Run(context.Background()); failures != nil {
		t.Errorf("lookup error should pass the uniqueness rule, got %v", failures)
	}
}

func TestUsernameAvailable(t *testing.T) {
	rules := NewRules(&fakeStore{users: []models.User{{ID: 1, Username: "gisli"}}})

	if failures := rules.UsernameAvailable("username", strPtr("gisli")).Run(context.Background()); len(failures) != 1 {
		t.Error("taken username should fail")
	}
	if failures := rules.UsernameAvailable("username", strPtr("isak")).Run(context.Background()); failures != nil {
		t.Errorf("free username should pass, got %v", failures)
	}
}
