// Package storage provides the in-memory Storage backend.
//
// # Overview
//
// Memory keeps user and todo tables in process memory behind a single
// writer lock. Ids are monotonically increasing per entity type and are
// never reused, even after deletion. There is no persistence: restarting
// the process clears all records, which is the intended deployment model
// for this service.
//
// # Usage
//
//	store := storage.NewMemory()
//	user := &api.User{Email: "a@x.com", Name: "A", PasswordHash: digest}
//	if err := store.CreateUser(user); err != nil { ... }
//
// # Related Packages
//
//   - pkg/api: the Storage interface and entity types
package storage
