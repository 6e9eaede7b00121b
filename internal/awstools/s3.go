package awstools

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/opskit/awsmcp/internal/errors"
)

// Bucket is one S3 bucket in a listing.
type Bucket struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListBuckets returns all buckets owned by the account.
func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	out, err := s3.NewFromConfig(c.cfg).ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAWSCall, err)
	}

	buckets := make([]Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, Bucket{
			Name:      aws.ToString(b.Name),
			CreatedAt: aws.ToTime(b.CreationDate),
		})
	}
	return buckets, nil
}
