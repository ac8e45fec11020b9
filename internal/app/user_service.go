package app

import (
	"context"

	"pressfeed/internal/model"
)

// UserService exposes author profiles and per-user profile images.
type UserService struct {
	users  UserStore
	images ImageBlobStore
}

func NewUserService(users UserStore, images ImageBlobStore) *UserService {
	return &UserService{users: users, images: images}
}

// GetAuthor returns the public profile, or nil when the login is unknown.
func (s *UserService) GetAuthor(ctx context.Context, login string) (*model.AuthorInfo, error) {
	if login == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &model.AuthorInfo{
		ID:          user.ID,
		Login:       user.Login,
		Description: user.Description,
	}, nil
}

func (s *UserService) UpdateDescription(ctx context.Context, login, description string) error {
	if login == "" {
		return ErrInvalidInput
	}
	return s.users.UpdateDescription(ctx, login, description)
}

func (s *UserService) AddImages(ctx context.Context, login string, base64Images []string) ([]string, error) {
	if len(base64Images) == 0 {
		return nil, ErrInvalidInput
	}
	userID, err := s.resolveID(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.images.Insert(ctx, userID, base64Images)
}

func (s *UserService) ListImages(ctx context.Context, login string, firstOnly bool) ([]string, error) {
	userID, err := s.resolveID(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.images.ListIDs(ctx, userID, firstOnly)
}

func (s *UserService) GetImage(ctx context.Context, login, imageID string) ([]byte, error) {
	if imageID == "" {
		return nil, ErrInvalidInput
	}
	userID, err := s.resolveID(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.images.GetBytes(ctx, userID, imageID)
}

// ReplaceImage overwrites an existing profile image. False means the
// image id was never there; replace does not create.
func (s *UserService) ReplaceImage(ctx context.Context, login, imageID, b64Image string) (bool, error) {
	if imageID == "" || b64Image == "" {
		return false, ErrInvalidInput
	}
	userID, err := s.resolveID(ctx, login)
	if err != nil {
		return false, err
	}
	return s.images.Replace(ctx, userID, imageID, b64Image)
}

func (s *UserService) resolveID(ctx context.Context, login string) (uint, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUnknownLogin
	}
	return user.ID, nil
}
