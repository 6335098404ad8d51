// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Profile represents a public GitHub user profile.
//
// The `json:"..."` tags match the field names GitHub's REST API uses
// (snake_case), so we can decode the /users/{username} response directly
// into this struct without a translation layer.
//
// WHY POINTER FIELDS (*string)?
// GitHub returns `null` for profile attributes the user hasn't filled in
// (name, bio, company, ...). A plain string can't distinguish "not set"
// from "set to empty", but a *string can: nil means the field was null.
// The frontend uses that distinction to hide empty sections entirely.
//
// Login and ID are never null — every account has both.
type Profile struct {
	Login       string    `json:"login"`      // GitHub username, e.g. "octocat"
	ID          int64     `json:"id"`         // GitHub's numeric user ID — stable, never changes
	Name        *string   `json:"name"`       // Display name (null if not set)
	AvatarURL   string    `json:"avatar_url"` // Profile picture URL
	Bio         *string   `json:"bio"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Blog        *string   `json:"blog"`
	Email       *string   `json:"email"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"` // Account creation date
}
