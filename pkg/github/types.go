package github

import "time"

// User is the upstream user profile payload. Optional upstream fields are
// pointers so absent values survive as null instead of empty strings.
type User struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Blog        *string   `json:"blog"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repository struct {
	Name            string     `json:"name"`
	FullName        string     `json:"full_name"`
	Description     *string    `json:"description"`
	Language        *string    `json:"language"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	PushedAt        *time.Time `json:"pushed_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
	Owner           Owner      `json:"owner"`
}

type Owner struct {
	Login string `json:"login"`
}

type PullRequest struct {
	Title     string     `json:"title"`
	State     string     `json:"state"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	User      Owner      `json:"user"`
}

// Event is an entry from the public activity feed. Only PushEvent
// payloads carry commits; other event types leave Payload.Commits empty.
type Event struct {
	Type      string       `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Payload   EventPayload `json:"payload"`
}

type EventPayload struct {
	Commits []EventCommit `json:"commits"`
}

type EventCommit struct {
	Message string `json:"message"`
}
