package catalog

import (
	"context"
	"fmt"
)

// User is the public profile of a user.
type User struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

func (User) kind() Kind { return userKind }

// PrivateUser is the current user's profile, which adds account details
// visible only to that user.
type PrivateUser struct {
	User
	Country string `json:"country"`
	Email   string `json:"email"`
	Product string `json:"product"`
}

// UserService provides user profile operations.
type UserService struct {
	client *Client
}

// Me fetches the profile of the user the access token belongs to.
func (s *UserService) Me(ctx context.Context) (*PrivateUser, error) {
	me, err := fetchOne[PrivateUser](ctx, s.client, newEndpoint("me"))
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return me, nil
}

// Get fetches a user's public profile.
func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	user, err := Get[User](ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}
