package api

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Storage when a record does not exist
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned by Storage when a write would give two
// users the same email
var ErrEmailExists = errors.New("email already exists")

// User represents a registered account. PasswordHash never serializes;
// external responses additionally go through Public() so the hash cannot
// leak through a forgotten field.
type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Profile is the public projection of a User
type Profile struct {
	ID        int        `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Public returns the externally visible view of the user
func (u *User) Public() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Todo represents a task record owned by a single user
type Todo struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserUpdate is a partial user mutation; nil fields are left unchanged
type UserUpdate struct {
	Email *string
	Name  *string
}

// TodoUpdate is a partial todo mutation; nil fields are left unchanged
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Storage defines the persistence operations the API requires.
//
// Ids are assigned by the implementation, monotonically increasing per
// entity type and never reused. Email uniqueness is enforced inside the
// store: CreateUser, and UpdateUser when it changes the email, return
// ErrEmailExists atomically with the write, so two concurrent callers
// can never both succeed with the same address.
type Storage interface {
	// User operations
	CreateUser(user *User) error
	GetUser(id int) (*User, error)
	GetUserByEmail(email string) (*User, error)
	ListUsers() ([]*User, error)
	UpdateUser(id int, update UserUpdate) (*User, error)
	DeleteUser(id int) (*User, error)

	// Todo operations
	CreateTodo(todo *Todo) error
	GetTodo(id int) (*Todo, error)
	ListTodosByOwner(ownerID int) ([]*Todo, error)
	UpdateTodo(id int, update TodoUpdate) (*Todo, error)
	DeleteTodo(id int) (*Todo, error)

	// Counts reports current record counts for metrics
	Counts() (users, todos int)
}
