package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"ats-backend/config"
	"ats-backend/db"
	filesdbstorage "ats-backend/lib/file-storage/storage"
	"ats-backend/lib/utils/apperr"
	dbmodels "ats-backend/models/db"
	s3client "ats-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	Upload(ctx context.Context, companyID, candidateID string, fileType dbmodels.FileType, fileName, contentType string, data []byte) (fileID string, err error)
	GetFile(ctx context.Context, companyID, fileID string) (data []byte, meta *dbmodels.FileStorage, err error)
	GetResume(ctx context.Context, companyID, candidateID string) (data []byte, meta *dbmodels.FileStorage, err error)
	MakeCompanyBucket(ctx context.Context, companyID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		s3client: s3client.Client,
		store:    filesdbstorage.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    filesdbstorage.Provider
}

func (i impl) Upload(ctx context.Context, companyID, candidateID string, fileType dbmodels.FileType, fileName, contentType string, data []byte) (string, error) {
	if err := i.MakeCompanyBucket(ctx, companyID); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	rec := dbmodels.FileStorage{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		CandidateID: candidateID,
		FileType:    fileType,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	fileID, err := i.store.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "failed to save file metadata")
	}
	_, err = i.s3client.PutObject(ctx, i.bucketName(companyID), fileID,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", apperr.ExternalWrap(err, "failed to upload file to object storage")
	}
	return fileID, nil
}

func (i impl) GetFile(ctx context.Context, companyID, fileID string) ([]byte, *dbmodels.FileStorage, error) {
	meta, err := i.store.GetByID(companyID, fileID)
	if err != nil {
		return nil, nil, err
	}
	if meta == nil {
		return nil, nil, apperr.NotFound("file not found")
	}
	obj, err := i.s3client.GetObject(ctx, i.bucketName(companyID), fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, apperr.ExternalWrap(err, "failed to fetch file from object storage")
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, nil, apperr.ExternalWrap(err, "failed to read file from object storage")
	}
	return data, meta, nil
}

func (i impl) GetResume(ctx context.Context, companyID, candidateID string) ([]byte, *dbmodels.FileStorage, error) {
	fileID, err := i.store.GetFileIDByType(candidateID, dbmodels.ResumeFileType)
	if err != nil {
		return nil, nil, err
	}
	if fileID == "" {
		return nil, nil, apperr.NotFound("candidate has no stored resume")
	}
	return i.GetFile(ctx, companyID, fileID)
}

func (i impl) MakeCompanyBucket(ctx context.Context, companyID string) error {
	bucketName := i.bucketName(companyID)
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return apperr.ExternalWrap(err, "failed to check bucket")
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
	if err != nil {
		return apperr.ExternalWrap(err, "failed to create bucket")
	}
	return nil
}

// one bucket per tenant, objects keyed by file id
func (i impl) bucketName(companyID string) string {
	return fmt.Sprintf("%s-%s", config.Conf.S3.BucketName, companyID)
}
