// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client used for
// cover-image handling. Files are uploaded directly from the browser via
// presigned PUT URLs; the server only mints credentials and stores keys.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// DefaultUploadExpiry is how long a presigned upload URL stays valid.
const DefaultUploadExpiry = 15 * time.Minute

// Client wraps an S3 client and presigner for a single media bucket.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for uploaded files
}

// New creates an S3 storage client configured for path-style access
// (required by CEPH/Hetzner-style providers). Returns (nil, nil) if
// endpoint or credentials are empty, allowing the app to start without
// storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// BuildKey derives the deterministic storage key for an upload:
// <variant>/<year>/<month>/<randomId><ext>, where ext comes from the
// original file name. The random id makes keys collision-free without
// coordinating with the database.
func BuildKey(variant, originalName string, now time.Time, id uuid.UUID) string {
	ext := strings.ToLower(path.Ext(originalName))
	return fmt.Sprintf("%s/%d/%02d/%s%s", variant, now.Year(), int(now.Month()), id, ext)
}

// UploadCredential is the bundle handed to the browser for a direct
// client-to-bucket upload.
type UploadCredential struct {
	Bucket    string            `json:"bucket"`
	Key       string            `json:"key"`
	UploadURL string            `json:"uploadUrl"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ExpiresIn int               `json:"expiresIn"` // seconds
	PublicURL string            `json:"publicUrl"` // where the object will be served from
}

// PresignUpload mints a time-boxed PUT credential for the exact key,
// binding the declared content type and size so the client cannot upload
// something else under this URL.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string, size int64) (*UploadCredential, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(DefaultUploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("s3 presign upload %s/%s: %w", c.bucket, key, err)
	}

	headers := map[string]string{"Content-Type": contentType}
	for k, v := range req.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &UploadCredential{
		Bucket:    c.bucket,
		Key:       key,
		UploadURL: req.URL,
		Method:    req.Method,
		Headers:   headers,
		ExpiresIn: int(DefaultUploadExpiry.Seconds()),
		PublicURL: c.FileURL(key),
	}, nil
}

// Delete removes an object from the bucket. Used when a news item with a
// cover image is deleted.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for an uploaded object. Uses the
// configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// Bucket returns the media bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
