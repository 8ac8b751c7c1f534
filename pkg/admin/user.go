package admin

import (
	"context"
	"net/http"
	"strings"
)

// Users groups the user operations.
type Users struct {
	core *core
}

// GetAll lists every user.
func (r *Users) GetAll(ctx context.Context) Result[[]UserInfo] {
	return list[UserInfo](ctx, r.core, "users")
}

// Create creates the user described by configure.
func (r *Users) Create(ctx context.Context, configure func(*UserCreateAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &UserCreateAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodPut,
		Path:   "api/users/" + escapeSegment(action.Username()),
		Body:   action.Definition(),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to create user", "user", action.Username())
}

// Delete removes the user named by configure.
func (r *Users) Delete(ctx context.Context, configure func(*UserDeleteAction)) Result[Empty] {
	if err := checkCancelled(ctx); err != nil {
		return Faulted[Empty](DebugInfo{}, err)
	}

	action := &UserDeleteAction{}
	if configure != nil {
		configure(action)
	}
	action.seal()

	req := Request{
		Method: http.MethodDelete,
		Path:   "api/users/" + escapeSegment(action.Username()),
	}
	return exec(ctx, r.core, action.Errors(), req, "sent request to delete user", "user", action.Username())
}

type userTarget struct {
	Username string `validate:"present" field:"username"`
}

// UserCreateAction captures a user create request.
type UserCreateAction struct {
	username     string
	password     string
	passwordHash string
	tags         []string

	sealed     bool
	definition UserDefinition
	errs       []*Error
}

// User sets the username and plain password.
func (a *UserCreateAction) User(username, password string) {
	a.username = username
	a.password = password
}

// WithPasswordHash sets a pre-hashed password instead of a plain one.
func (a *UserCreateAction) WithPasswordHash(hash string) { a.passwordHash = hash }

// WithTags adds management tags such as "administrator" or "monitoring".
func (a *UserCreateAction) WithTags(tags ...string) {
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			a.tags = append(a.tags, tag)
		}
	}
}

func (a *UserCreateAction) seal() {
	trimIdentifiers(&a.username)
	var missing []*Error
	if strings.TrimSpace(a.password) == "" && strings.TrimSpace(a.passwordHash) == "" {
		missing = append(missing, newMissingFieldError("password", "the password or password hash is missing"))
	}

	a.definition = UserDefinition{
		Password:     a.password,
		PasswordHash: a.passwordHash,
		Tags:         strings.Join(a.tags, ","),
	}
	a.errs = collect(userTarget{Username: a.username}, missing)
	a.sealed = true
}

// Username returns the sealed username.
func (a *UserCreateAction) Username() string {
	if !a.sealed {
		return ""
	}
	return a.username
}

// Definition returns the sealed user document.
func (a *UserCreateAction) Definition() UserDefinition { return a.definition }

// Errors returns the validation errors found when the action was sealed.
func (a *UserCreateAction) Errors() []*Error { return append([]*Error(nil), a.errs...) }

// UserDeleteAction captures a user delete request.
type UserDeleteAction struct {
	username string

	sealed bool
	errs   []*Error
}

// User names the user to delete.
func (a *UserDeleteAction) User(username string) { a.username = username }

func (a *UserDeleteAction) seal() {
	trimIdentifiers(&a.username)
	a.errs = collect(userTarget{Username: a.username})
	a.sealed = true
}

// Username returns the sealed username.
func (a *UserDeleteAction) Username() string {
	if !a.sealed {
		return ""
	}
	return a.username
}

// Errors returns the validation errors found when the action was sealed.
func (a *UserDeleteAction) Errors() []*Error { return append([]*Error(nil), a.errs...) }
