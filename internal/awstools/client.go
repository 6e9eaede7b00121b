// Package awstools wraps the AWS SDK calls exposed as MCP tools.
//
// Each wrapper is thin glue: it forwards parameters to one SDK call and
// returns the result in a flat, JSON-friendly shape. No retries or caching
// beyond what the SDK provides.
package awstools

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/errors"
)

// Client bundles the resolved AWS configuration for the tool wrappers.
type Client struct {
	cfg aws.Config
}

// New resolves AWS configuration through the SDK default chain, honoring
// the configured region and profile when set.
func New(ctx context.Context, cfg config.AWSConfig) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New(errors.ErrCodeAWSUnavailable,
			fmt.Sprintf("failed to load AWS configuration: %v", err), err)
	}

	return &Client{cfg: awsCfg}, nil
}

// Region returns the resolved default region.
func (c *Client) Region() string {
	return c.cfg.Region
}
