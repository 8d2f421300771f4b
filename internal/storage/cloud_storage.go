// Package storage wraps the bucket that holds uploaded resumes and logos.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Client is the subset of bucket operations the controllers need.
type Client interface {
	UploadFile(objectName string, fileData io.Reader) error
	DownloadFile(objectName string) ([]byte, error)
	DeleteFile(objectName string) error
	ObjectURL(objectName string) string
}

// CloudStorageClient talks to a Google Cloud Storage bucket.
type CloudStorageClient struct {
	BucketName string
	Ctx        context.Context
	Client     *storage.Client
}

// NewCloudStorageClient creates a client for bucketName. When
// GOOGLE_APPLICATION_CREDENTIALS_FILE is set it is used explicitly;
// otherwise the default credential chain applies.
func NewCloudStorageClient(bucketName string) (*CloudStorageClient, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_FILE"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		Ctx:        ctx,
		Client:     client,
	}, nil
}

// UploadFile writes fileData to objectName in the bucket.
func (c *CloudStorageClient) UploadFile(objectName string, fileData io.Reader) error {
	bucket := c.Client.Bucket(c.BucketName)
	obj := bucket.Object(objectName)
	wc := obj.NewWriter(c.Ctx)
	if _, err := io.Copy(wc, fileData); err != nil {
		return fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close object writer: %v", err)
	}
	return nil
}

// DownloadFile reads the full content of objectName.
func (c *CloudStorageClient) DownloadFile(objectName string) ([]byte, error) {
	rc, err := c.Client.Bucket(c.BucketName).Object(objectName).NewReader(c.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object reader: %v", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %v", err)
	}
	return data, nil
}

// DeleteFile removes objectName from the bucket.
func (c *CloudStorageClient) DeleteFile(objectName string) error {
	if err := c.Client.Bucket(c.BucketName).Object(objectName).Delete(c.Ctx); err != nil {
		return fmt.Errorf("failed to delete object: %v", err)
	}
	return nil
}

// ObjectURL returns the public URL of objectName.
func (c *CloudStorageClient) ObjectURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.BucketName, objectName)
}
