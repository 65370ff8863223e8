package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/domain/entity"
	"marketplace-backend/internal/domain/repository"
	"marketplace-backend/pkg/helpers"
)

// UserService covers profile reads and edits, avatar storage and the
// contact listing used by chat.
type UserService struct {
	Repo   repository.UserRepository
	GCS    *storage.Client
	Bucket string
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, gcs *storage.Client, bucket string, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, GCS: gcs, Bucket: bucket, Redis: rdb, Logger: logger}
}

// refreshSession keeps the login session hash in step with profile edits,
// so middleware and chat listings see the current name and avatar.
func (s *UserService) refreshSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	err := helpers.TouchSession(ctx, s.Redis, u.ID, map[string]any{
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
	})
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session refresh failed")
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.Redacted, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view := u.Redact()
	return &view, nil
}

type ProfileUpdate struct {
	Name string
}

// UpdateProfile edits mutable profile fields. Email and role are not
// editable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*entity.Redacted, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.refreshSession(ctx, u)
	view := u.Redact()
	return &view, nil
}

// UploadAvatar stores the image in object storage under a fresh key,
// points the profile at its public URL, then drops the previous object.
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader) (*entity.Redacted, error) {
	if s.GCS == nil {
		return nil, errors.New("object storage not configured")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	objectPath := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), path.Ext(filename))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	previous := u.AvatarStorageID
	u.AvatarURL = url
	u.AvatarStorageID = objectPath
	if err := s.Repo.Update(ctx, u); err != nil {
		// The profile still points at the old avatar, so clean up the
		// orphaned upload.
		if derr := helpers.DeleteObject(ctx, s.GCS, s.Bucket, objectPath); derr != nil && s.Logger != nil {
			s.Logger.WithError(derr).WithField("object", objectPath).Warn("orphaned avatar cleanup failed")
		}
		return nil, err
	}

	if previous != "" {
		if derr := helpers.DeleteObject(ctx, s.GCS, s.Bucket, previous); derr != nil && s.Logger != nil {
			s.Logger.WithError(derr).WithField("object", previous).Warn("old avatar delete failed")
		}
	}

	s.refreshSession(ctx, u)
	view := u.Redact()
	return &view, nil
}

// ListContacts returns everyone except the caller, for starting chats.
func (s *UserService) ListContacts(ctx context.Context, callerID string) ([]entity.Redacted, error) {
	users, err := s.Repo.ListOthers(ctx, callerID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Redacted, 0, len(users))
	for i := range users {
		out = append(out, users[i].Redact())
	}
	return out, nil
}
