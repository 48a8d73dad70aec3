package evidence

import (
	"context"
	"time"
)

// ProfileRecord mirrors the upstream user profile verbatim; optional
// upstream fields stay null when absent.
type ProfileRecord struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Blog        *string   `json:"blog"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"publicRepos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Toolset) Profile(ctx context.Context, username string) (*ProfileRecord, error) {
	user, err := t.gh.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return &ProfileRecord{
		Login:       user.Login,
		Name:        user.Name,
		Bio:         user.Bio,
		Company:     user.Company,
		Location:    user.Location,
		Blog:        user.Blog,
		Followers:   user.Followers,
		Following:   user.Following,
		PublicRepos: user.PublicRepos,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}
