// Package model defines the core domain types of the event-publishing
// platform: entities, their status machines with explicit transition
// tables, and the pure admission rules reused by the transactional write
// paths in the repository layer.
package model

// User is a registered account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserShort is the user projection embedded in events and listings.
type UserShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Short projects the user onto its embedded representation.
func (u User) Short() UserShort { return UserShort{ID: u.ID, Name: u.Name} }

// NewUser is the payload for registering a user.
type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Category groups events by topic.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewCategory is the payload for creating or renaming a category.
type NewCategory struct {
	Name string `json:"name"`
}

// Compilation is a curated, optionally pinned set of events.
type Compilation struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Pinned bool         `json:"pinned"`
	Events []EventShort `json:"events"`
}

// NewCompilation is the payload for creating a compilation.
type NewCompilation struct {
	Title    string   `json:"title"`
	Pinned   *bool    `json:"pinned"`
	EventIDs []string `json:"events"`
}

// UpdateCompilation is the patch payload for a compilation; nil fields are
// left unchanged.
type UpdateCompilation struct {
	Title    *string  `json:"title"`
	Pinned   *bool    `json:"pinned"`
	EventIDs []string `json:"events"`
}
