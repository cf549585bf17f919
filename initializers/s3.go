package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
	"timesheet-backend/config"
)

func InitS3() *minio.Client {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("s3 client init failed")
		return nil
	}

	if _, err = minioClient.ListBuckets(context.Background()); err != nil {
		log.WithError(err).Error("s3 connection check failed")
	}

	log.Info("s3 client initialized")
	return minioClient
}
