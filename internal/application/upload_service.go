package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"marketplace-backend/pkg/helpers"
)

// UploadService stores standalone images (product photos) in object storage.
// Objects live under uploads/<userID>/, which is also the ownership check
// for deletes.
type UploadService struct {
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewUploadService(gcs *storage.Client, bucket string, logger *logrus.Logger) *UploadService {
	return &UploadService{GCS: gcs, Bucket: bucket, Logger: logger}
}

// Stored describes one uploaded object.
type Stored struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id"`
}

func (s *UploadService) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (*Stored, error) {
	if s.GCS == nil {
		return nil, errors.New("object storage not configured")
	}
	objectPath := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), path.Ext(filename))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	return &Stored{URL: url, StorageID: objectPath}, nil
}

func (s *UploadService) Delete(ctx context.Context, userID, storageID string) error {
	if s.GCS == nil {
		return errors.New("object storage not configured")
	}
	if !strings.HasPrefix(storageID, "uploads/"+userID+"/") {
		return ErrForbidden
	}
	return helpers.DeleteObject(ctx, s.GCS, s.Bucket, storageID)
}
