package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/vefforritun/verkefni-api/models"
)

// dateLayouts are the accepted date formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a request date field.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func fail(field, message string, kind Kind) []Failure {
	return []Failure{{Field: field, Message: message, Kind: kind}}
}

// RequiredString checks that the field is present, non-empty after
// trimming and within maxLength.
func RequiredString(field string, value *string, maxLength int) Step {
	return Step{
		Name: field + "-required-string",
		Run: func(ctx context.Context) []Failure {
			if value == nil || strings.TrimSpace(*value) == "" {
				return fail(field, field+" required", BadInput)
			}
			if maxLength > 0 && len(*value) > maxLength {
				return fail(field, fmt.Sprintf("%s max %d characters", field, maxLength), BadInput)
			}
			return nil
		},
	}
}

// OptionalString checks maxLength on a field that may be absent.
func OptionalString(field string, value *string, maxLength int) Step {
	return Step{
		Name: field + "-optional-string",
		Run: func(ctx context.Context) []Failure {
			if value == nil {
				return nil
			}
			if maxLength > 0 && len(*value) > maxLength {
				return fail(field, fmt.Sprintf("%s max %d characters", field, maxLength), BadInput)
			}
			return nil
		},
	}
}

// ValidDate checks that the field parses as a date. Optional fields may
// be absent but not malformed.
func ValidDate(field string, value *string, optional bool) Step {
	return Step{
		Name: field + "-valid-date",
		Run: func(ctx context.Context) []Failure {
			if value == nil {
				if optional {
					return nil
				}
				return fail(field, field+" required", BadInput)
			}
			if _, err := ParseDate(*value); err != nil {
				return fail(field, field+" must be a valid date", BadInput)
			}
			return nil
		},
	}
}

// AtLeastOneOf rejects a partial update that supplies none of the
// mutable fields. Values must be pointers matching fields by position.
func AtLeastOneOf(fields []string, values ...any) Step {
	return Step{
		Name: "at-least-one-of",
		Run: func(ctx context.Context) []Failure {
			for _, value := range values {
				switch v := value.(type) {
				case *string:
					if v != nil {
						return nil
					}
				case *int:
					if v != nil {
						return nil
					}
				}
			}
			message := "require at least one value of: " + strings.Join(fields, ", ")
			return fail("", message, BadInput)
		},
	}
}

// Store is the slice of the data layer the referential and uniqueness
// rules need.
type Store interface {
	GetTaskTypes(ctx context.Context) ([]models.TaskType, error)
	GetTaskTags(ctx context.Context) ([]models.TaskTag, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetTaskType(ctx context.Context, slug string) (*models.TaskType, error)
	GetTaskTag(ctx context.Context, slug string) (*models.TaskTag, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Rules builds the steps that need the store.
type Rules struct {
	store Store
}

func NewRules(store Store) *Rules {
	return &Rules{store: store}
}

// TaskTypeIDExists checks that the field references an existing task
// type. A lookup failure counts as "does not exist".
func (r *Rules) TaskTypeIDExists(field string, id *int) Step {
	return Step{
		Name: field + "-exists",
		Run: func(ctx context.Context) []Failure {
			taskTypes, err := r.store.GetTaskTypes(ctx)
			if err != nil {
				taskTypes = nil
			}
			if id != nil {
				for _, taskType := range taskTypes {
					if taskType.ID == *id {
						return nil
					}
				}
			}
			return fail(field, field+" must reference an existing task type", BadInput)
		},
	}
}

// TaskTagIDExists checks that the field references an existing task tag.
func (r *Rules) TaskTagIDExists(field string, id *int) Step {
	return Step{
		Name: field + "-exists",
		Run: func(ctx context.Context) []Failure {
			taskTags, err := r.store.GetTaskTags(ctx)
			if err != nil {
				taskTags = nil
			}
			if id != nil {
				for _, taskTag := range taskTags {
					if taskTag.ID == *id {
						return nil
					}
				}
			}
			return fail(field, field+" must reference an existing task tag", BadInput)
		},
	}
}

// UserIDExists checks that the field references an existing user.
func (r *Rules) UserIDExists(field string, id *int) Step {
	return Step{
		Name: field + "-exists",
		Run: func(ctx context.Context) []Failure {
			users, err := r.store.GetUsers(ctx)
			if err != nil {
				users = nil
			}
			if id != nil {
				for _, user := range users {
					if user.ID == *id {
						return nil
					}
				}
			}
			return fail(field, field+" must reference an existing user", BadInput)
		},
	}
}

// TaskTypeSlugAvailable rejects a name whose slug is already taken. A
// lookup failure passes, creation then fails on the unique constraint.
func (r *Rules) TaskTypeSlugAvailable(field string, name *string) Step {
	return Step{
		Name: field + "-slug-available",
		Run: func(ctx context.Context) []Failure {
			if name == nil {
				return nil
			}
			if _, err := r.store.GetTaskType(ctx, slug.Make(*name)); err == nil {
				return fail(field, "task type already exists", Conflict)
			}
			return nil
		},
	}
}

// TaskTagSlugAvailable rejects a name whose slug is already taken.
func (r *Rules) TaskTagSlugAvailable(field string, name *string) Step {
	return Step{
		Name: field + "-slug-available",
		Run: func(ctx context.Context) []Failure {
			if name == nil {
				return nil
			}
			if _, err := r.store.GetTaskTag(ctx, slug.Make(*name)); err == nil {
				return fail(field, "task tag already exists", Conflict)
			}
			return nil
		},
	}
}

// UsernameAvailable rejects a username that is already taken.
func (r *Rules) UsernameAvailable(field string, username *string) Step {
	return Step{
		Name: field + "-available",
		Run: func(ctx context.Context) []Failure {
			if username == nil {
				return nil
			}
			if _, err := r.store.GetUserByUsername(ctx, *username); err == nil {
				return fail(field, "username already exists", Conflict)
			}
			return nil
		},
	}
}
