package blobsvc

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
	"github.com/festify/console/services/gcp"
)

const (
	uploadTimeout = 2 * time.Minute
	deleteTimeout = 30 * time.Second
)

// GCSStore keeps blobs in the project's Firebase Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	logger core.Logger
}

var _ core.BlobStore = (*GCSStore)(nil)

func NewGCSStore(ctx context.Context, conf *core.Config, logger core.Logger) (*GCSStore, error) {
	if conf.Firebase.StorageBucket == "" {
		return nil, errors.New("FIREBASE_STORAGEBUCKET is not set")
	}
	client, err := storage.NewClient(ctx, gcp.ClientOptions(conf)...)
	if err != nil {
		return nil, errors.Wrap(err, "creating storage client")
	}
	return &GCSStore{client: client, bucket: conf.Firebase.StorageBucket, logger: logger}, nil
}

func (s *GCSStore) IsDurable(str string) bool {
	return strings.HasPrefix(str, "https://") && strings.Contains(str, s.bucket)
}

func (s *GCSStore) Check(payload string) error {
	if s.IsDurable(payload) {
		return nil
	}
	_, _, err := decodePayload(payload)
	return err
}

func (s *GCSStore) Upload(ctx context.Context, dir, payload string) (string, error) {
	if s.IsDurable(payload) {
		return payload, nil
	}
	data, contentType, err := decodePayload(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	name := path.Join(dir, uuid.NewString())
	token := uuid.NewString()

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", errors.Wrapf(err, "writing %s", name)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s", name)
	}
	return downloadURL(s.bucket, name, token), nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	name, ok := objectName(s.bucket, url)
	if !ok {
		s.logger.Warn(fmt.Sprintf("not deleting %q: not an object of bucket %s", url, s.bucket))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return errors.Wrapf(err, "deleting %s", name)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
