package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	MinioClient   *minio.Client
	minioEndpoint string
)

const avatarBucket = "avatars"

// InitMinio connects the object-storage client and ensures the avatar bucket
// exists.
func InitMinio(endpoint, accessKey, secretKey string) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, avatarBucket)
	if err != nil {
		log.Printf("Warning: Failed to check bucket existence: %v", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, avatarBucket, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Warning: Failed to create bucket: %v", err)
		} else {
			log.Printf("Created bucket: %s", avatarBucket)
		}
	}

	MinioClient = client
	minioEndpoint = endpoint
	fmt.Println("✅ Connected to MinIO")
}

// UploadAvatar stores an uploaded avatar image and returns its public URL.
func UploadAvatar(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open avatar: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}

	objectName := fmt.Sprintf("%s_%s", primitive.NewObjectID().Hex(), fileHeader.Filename)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = MinioClient.PutObject(
		ctx,
		avatarBucket,
		objectName,
		bytes.NewReader(fileBytes),
		int64(len(fileBytes)),
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return fmt.Sprintf("http://%s/%s/%s", minioEndpoint, avatarBucket, objectName), nil
}
