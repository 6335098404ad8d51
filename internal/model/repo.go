package model

import "time"

// Repo represents a single public repository in a user's repository list.
// Field names and json tags follow GitHub's /users/{username}/repos payload.
//
// Description and Language are null for repos without them, so they are
// pointers (see the note on Profile about nullable API fields).
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`      // e.g. "devfinder"
	FullName        string    `json:"full_name"` // e.g. "sakif/devfinder"
	Description     *string   `json:"description"`
	Language        *string   `json:"language"` // Primary language, e.g. "Go"
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"` // Last update — the list is sorted by this
	HTMLURL         string    `json:"html_url"`   // Canonical link to the repo on github.com
}
