package awstools

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/opskit/awsmcp/internal/errors"
)

// CallerIdentity is the result of an STS GetCallerIdentity call.
type CallerIdentity struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
	UserID  string `json:"user_id"`
	Region  string `json:"region"`
}

// Identity returns the caller identity for the active credentials.
func (c *Client) Identity(ctx context.Context) (*CallerIdentity, error) {
	out, err := sts.NewFromConfig(c.cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAWSCall, err)
	}

	return &CallerIdentity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
		Region:  c.cfg.Region,
	}, nil
}
