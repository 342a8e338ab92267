package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Хранилище файлов площадки: подписи, фото наблюдений, документы рабочих.
// Бакет создаётся на площадку, идентификатор файла возвращается вызывающему
// и хранится в записи как ссылка.
type Provider interface {
	UploadSignature(ctx context.Context, workSiteID string, file []byte) (fileID string, err error)
	UploadImage(ctx context.Context, workSiteID string, file []byte, contentType string) (fileID string, err error)
	UploadDoc(ctx context.Context, workSiteID string, file []byte, fileName string) (fileID string, err error)
	GetFile(ctx context.Context, workSiteID, fileID string) ([]byte, error)
	MakeWorkSiteBucket(ctx context.Context, workSiteID string) error
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadSignature(ctx context.Context, workSiteID string, file []byte) (string, error) {
	fileID := fmt.Sprintf("signatures/%v.png", uuid.NewString())
	return i.upload(ctx, workSiteID, fileID, file, "image/png")
}

func (i impl) UploadImage(ctx context.Context, workSiteID string, file []byte, contentType string) (string, error) {
	fileID := fmt.Sprintf("images/%v", uuid.NewString())
	return i.upload(ctx, workSiteID, fileID, file, contentType)
}

func (i impl) UploadDoc(ctx context.Context, workSiteID string, file []byte, fileName string) (string, error) {
	fileID := fmt.Sprintf("docs/%v-%v", uuid.NewString(), fileName)
	return i.upload(ctx, workSiteID, fileID, file, "application/octet-stream")
}

func (i impl) upload(ctx context.Context, workSiteID, fileID string, file []byte, contentType string) (string, error) {
	_, err := i.s3client.PutObject(ctx, getBucketName(workSiteID), fileID,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла")
	}
	return fileID, nil
}

func (i impl) GetFile(ctx context.Context, workSiteID, fileID string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, getBucketName(workSiteID), fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла")
	}
	defer object.Close()
	data, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return data, nil
}

func (i impl) MakeWorkSiteBucket(ctx context.Context, workSiteID string) error {
	bucketName := getBucketName(workSiteID)
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}

func getBucketName(workSiteID string) string {
	return fmt.Sprintf("site-qhse-%s", workSiteID)
}
