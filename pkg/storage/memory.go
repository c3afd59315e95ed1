package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/platinummonkey/taskd/pkg/api"
)

// Memory implements api.Storage with mutex-guarded in-process tables.
// Email uniqueness is decided under the write lock together with the
// insert or update itself, so concurrent writers racing on the same
// address cannot both succeed.
type Memory struct {
	mu         sync.RWMutex
	users      map[int]*api.User
	todos      map[int]*api.Todo
	nextUserID int
	nextTodoID int

	now func() time.Time
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[int]*api.User),
		todos:      make(map[int]*api.Todo),
		nextUserID: 1,
		nextTodoID: 1,
		now:        time.Now,
	}
}

// CreateUser assigns the next user id and CreatedAt, then stores the
// record. Returns api.ErrEmailExists if another user already holds the
// email; the check and the insert share one critical section.
func (m *Memory) CreateUser(user *api.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(user.Email, 0) {
		return api.ErrEmailExists
	}

	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = m.now()
	user.UpdatedAt = nil

	m.users[user.ID] = cloneUser(user)
	return nil
}

// GetUser returns the user with the given id, or api.ErrNotFound
func (m *Memory) GetUser(id int) (*api.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return cloneUser(user), nil
}

// GetUserByEmail returns the user with exactly the given email
// (case-sensitive), or api.ErrNotFound
func (m *Memory) GetUserByEmail(email string) (*api.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, api.ErrNotFound
}

// ListUsers returns all users ordered by id
func (m *Memory) ListUsers() ([]*api.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*api.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateUser merges the provided fields and refreshes UpdatedAt.
// An email change that collides with any record other than this one
// returns api.ErrEmailExists.
func (m *Memory) UpdateUser(id int, update api.UserUpdate) (*api.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, api.ErrNotFound
	}

	if update.Email != nil {
		if m.emailTaken(*update.Email, id) {
			return nil, api.ErrEmailExists
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	now := m.now()
	user.UpdatedAt = &now

	return cloneUser(user), nil
}

// DeleteUser removes the user and cascades to the user's todos, so a todo
// can never reference a missing owner. Returns the removed user or
// api.ErrNotFound.
func (m *Memory) DeleteUser(id int) (*api.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	delete(m.users, id)

	for todoID, todo := range m.todos {
		if todo.OwnerID == id {
			delete(m.todos, todoID)
		}
	}

	return user, nil
}

// CreateTodo assigns the next todo id and timestamps, then stores the record
func (m *Memory) CreateTodo(todo *api.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo.ID = m.nextTodoID
	m.nextTodoID++
	now := m.now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	m.todos[todo.ID] = cloneTodo(todo)
	return nil
}

// GetTodo returns the todo with the given id, or api.ErrNotFound
func (m *Memory) GetTodo(id int) (*api.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todo, ok := m.todos[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return cloneTodo(todo), nil
}

// ListTodosByOwner returns the owner's todos ordered by id
func (m *Memory) ListTodosByOwner(ownerID int) ([]*api.Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	todos := make([]*api.Todo, 0)
	for _, todo := range m.todos {
		if todo.OwnerID == ownerID {
			todos = append(todos, cloneTodo(todo))
		}
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

// UpdateTodo merges the provided fields and refreshes UpdatedAt
func (m *Memory) UpdateTodo(id int, update api.TodoUpdate) (*api.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return nil, api.ErrNotFound
	}

	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Description != nil {
		todo.Description = *update.Description
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}
	todo.UpdatedAt = m.now()

	return cloneTodo(todo), nil
}

// DeleteTodo removes and returns the todo, or api.ErrNotFound
func (m *Memory) DeleteTodo(id int) (*api.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	delete(m.todos, id)
	return todo, nil
}

// emailTaken reports whether any user other than excludeID holds the
// email (exact, case-sensitive match). Callers must hold mu.
func (m *Memory) emailTaken(email string, excludeID int) bool {
	for _, user := range m.users {
		if user.Email == email && user.ID != excludeID {
			return true
		}
	}
	return false
}

// Counts reports current record counts for metrics
func (m *Memory) Counts() (users, todos int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), len(m.todos)
}

// Returned records are copies; callers can never mutate table state
// through a stale pointer.
func cloneUser(u *api.User) *api.User {
	c := *u
	if u.UpdatedAt != nil {
		updatedAt := *u.UpdatedAt
		c.UpdatedAt = &updatedAt
	}
	return &c
}

func cloneTodo(t *api.Todo) *api.Todo {
	c := *t
	return &c
}
