package awstools

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/opskit/awsmcp/internal/errors"
)

// Instance is one EC2 instance in a listing.
type Instance struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	Type       string    `json:"type"`
	State      string    `json:"state"`
	AZ         string    `json:"availability_zone"`
	PrivateIP  string    `json:"private_ip,omitempty"`
	PublicIP   string    `json:"public_ip,omitempty"`
	LaunchTime time.Time `json:"launch_time"`
}

// DescribeInstances lists EC2 instances, optionally restricted to a region
// and instance states (e.g. "running").
func (c *Client) DescribeInstances(ctx context.Context, region string, states []string) ([]Instance, error) {
	client := ec2.NewFromConfig(c.cfg, func(o *ec2.Options) {
		if region != "" {
			o.Region = region
		}
	})

	input := &ec2.DescribeInstancesInput{}
	if len(states) > 0 {
		input.Filters = []ec2types.Filter{{
			Name:   aws.String("instance-state-name"),
			Values: states,
		}}
	}

	var instances []Instance
	paginator := ec2.NewDescribeInstancesPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAWSCall, err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				instances = append(instances, toInstance(inst))
			}
		}
	}
	return instances, nil
}

func toInstance(inst ec2types.Instance) Instance {
	out := Instance{
		ID:         aws.ToString(inst.InstanceId),
		Type:       string(inst.InstanceType),
		PrivateIP:  aws.ToString(inst.PrivateIpAddress),
		PublicIP:   aws.ToString(inst.PublicIpAddress),
		LaunchTime: aws.ToTime(inst.LaunchTime),
	}
	if inst.State != nil {
		out.State = string(inst.State.Name)
	}
	if inst.Placement != nil {
		out.AZ = aws.ToString(inst.Placement.AvailabilityZone)
	}
	for _, tag := range inst.Tags {
		if aws.ToString(tag.Key) == "Name" {
			out.Name = aws.ToString(tag.Value)
			break
		}
	}
	return out
}
