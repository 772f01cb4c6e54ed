package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/dbx"
	sc "github.com/phonomarket/phono/internal/server/config"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
)

// ImageService stores listing photos in S3-compatible object storage and
// tracks them in the database.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *ImageService {
	return &ImageService{db: db, repomanager: m, config: config}
}

// storageKey spreads objects by date, so buckets stay listable.
func storageKey(fileName string) string {
	d := time.Now()
	return fmt.Sprintf("products/%d/%d/%d/%v-%s", d.Year(), d.Month(), d.Day(), uuid.New(), fileName)
}

func (s *ImageService) getS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// putObject and deleteObject are seams for testing without object storage.
var putObject = func(ctx context.Context, client *s3.Client, input *s3.PutObjectInput) error {
	_, err := client.PutObject(ctx, input)
	return err
}

var deleteObject = func(ctx context.Context, client *s3.Client, input *s3.DeleteObjectInput) error {
	_, err := client.DeleteObject(ctx, input)
	return err
}

// Upload stores the photo and records it. Only the listing's owner may add
// photos; when isMain is set, the previous main photo is demoted in the same
// transaction.
func (s *ImageService) Upload(ctx context.Context, userID, productID int64, isMain bool, fileName string, data []byte) (*models.ProductImage, error) {
	p, err := s.repomanager.Products(s.db).GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, common.ErrorNotFound
	}

	client, err := s.getS3Client()
	if err != nil {
		return nil, err
	}

	key := storageKey(fileName)
	if err := putObject(ctx, client, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}); err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}

	img := &models.ProductImage{
		ProductID: productID,
		URL:       s.config.PublicImageBaseURL + "/" + key,
		IsMain:    isMain,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Products(tx)
		if isMain {
			if err := repo.ClearMainImage(ctx, productID); err != nil {
				return err
			}
		}
		_, err := repo.AddImage(ctx, img)
		return err
	})
	if err != nil {
		return nil, err
	}

	return img, nil
}

func (s *ImageService) Delete(ctx context.Context, userID, id int64) error {
	img, err := s.repomanager.Products(s.db).GetImage(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repomanager.Products(s.db).DeleteImage(ctx, userID, id); err != nil {
		return err
	}

	// Removing the object is best effort; the row is already gone.
	client, err := s.getS3Client()
	if err != nil {
		return nil
	}
	key := img.URL
	if n := len(s.config.PublicImageBaseURL) + 1; len(key) > n {
		key = key[n:]
	}
	_ = deleteObject(ctx, client, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	})
	return nil
}

// SetMain flips the main flag to the given photo within one transaction.
func (s *ImageService) SetMain(ctx context.Context, userID, id int64) error {
	img, err := s.repomanager.Products(s.db).GetImage(ctx, id)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Products(tx)
		if err := repo.ClearMainImage(ctx, img.ProductID); err != nil {
			return err
		}
		return repo.SetMainImage(ctx, userID, id)
	})
}
