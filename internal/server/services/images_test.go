package services

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/server/config"
	"github.com/phonomarket/phono/internal/server/models"
)

func imageTestConfig() *config.Config {
	return &config.Config{
		S3RootUser:         "minio",
		S3RootPassword:     "minio123",
		S3Bucket:           "phono-images",
		S3Region:           "us-east-1",
		S3BaseEndpoint:     "http://127.0.0.1:9000",
		PublicImageBaseURL: "http://127.0.0.1:9000/phono-images",
	}
}

type objectCall struct {
	bucket string
	key    string
	body   []byte
}

func stubObjectStore(t *testing.T) (*[]objectCall, *[]string) {
	t.Helper()
	origPut, origDelete := putObject, deleteObject
	t.Cleanup(func() { putObject, deleteObject = origPut, origDelete })

	var puts []objectCall
	var deletes []string
	putObject = func(_ context.Context, _ *s3.Client, in *s3.PutObjectInput) error {
		body, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		puts = append(puts, objectCall{bucket: *in.Bucket, key: *in.Key, body: body})
		return nil
	}
	deleteObject = func(_ context.Context, _ *s3.Client, in *s3.DeleteObjectInput) error {
		deletes = append(deletes, *in.Key)
		return nil
	}
	return &puts, &deletes
}

func TestImageService_UploadDemotesPreviousMain(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	user, created := seedListing(t, m)
	productID := created.Product.ID

	prev, err := m.products.AddImage(ctx, &models.ProductImage{ProductID: productID, URL: "old", IsMain: true})
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	puts, _ := stubObjectStore(t)

	s := NewImageService(db, m, imageTestConfig())
	img, err := s.Upload(ctx, user.ID, productID, true, "front.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	require.True(t, img.IsMain)
	require.Contains(t, img.URL, "front.jpg")

	require.Len(t, *puts, 1)
	require.Equal(t, "phono-images", (*puts)[0].bucket)
	require.Equal(t, []byte("jpeg-bytes"), (*puts)[0].body)
	require.Equal(t, "http://127.0.0.1:9000/phono-images/"+(*puts)[0].key, img.URL)

	stored, err := m.products.GetImage(ctx, prev.ID)
	require.NoError(t, err)
	require.False(t, stored.IsMain)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImageService_UploadForeignListing(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	user, created := seedListing(t, m)

	puts, _ := stubObjectStore(t)

	s := NewImageService(nil, m, imageTestConfig())
	_, err := s.Upload(ctx, user.ID+1, created.Product.ID, false, "a.jpg", []byte("x"))
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Empty(t, *puts)
}

func TestImageService_DeleteRemovesObject(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	user, created := seedListing(t, m)

	cfg := imageTestConfig()
	img, err := m.products.AddImage(ctx, &models.ProductImage{
		ProductID: created.Product.ID,
		URL:       cfg.PublicImageBaseURL + "/products/2026/1/2/abc-front.jpg",
	})
	require.NoError(t, err)

	_, deletes := stubObjectStore(t)

	s := NewImageService(nil, m, cfg)
	require.NoError(t, s.Delete(ctx, user.ID, img.ID))

	_, err = m.products.GetImage(ctx, img.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Equal(t, []string{"products/2026/1/2/abc-front.jpg"}, *deletes)
}

func TestImageService_SetMain(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	user, created := seedListing(t, m)
	productID := created.Product.ID

	first, err := m.products.AddImage(ctx, &models.ProductImage{ProductID: productID, URL: "a", IsMain: true})
	require.NoError(t, err)
	second, err := m.products.AddImage(ctx, &models.ProductImage{ProductID: productID, URL: "b"})
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	s := NewImageService(db, m, imageTestConfig())
	require.NoError(t, s.SetMain(ctx, user.ID, second.ID))

	a, err := m.products.GetImage(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, a.IsMain)
	b, err := m.products.GetImage(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, b.IsMain)

	require.NoError(t, mock.ExpectationsWereMet())
}
