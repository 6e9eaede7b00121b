package awstools

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/opskit/awsmcp/internal/errors"
)

// ServiceCost is one service's share of the bill for a period.
type ServiceCost struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// CostSummary is the unblended cost for a period, grouped by service.
type CostSummary struct {
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Total    float64       `json:"total"`
	Currency string        `json:"currency"`
	Services []ServiceCost `json:"services"`
}

// CostByService returns monthly unblended cost grouped by service for the
// given period (dates in YYYY-MM-DD, end exclusive per the Cost Explorer API).
func (c *Client) CostByService(ctx context.Context, start, end string) (*CostSummary, error) {
	out, err := costexplorer.NewFromConfig(c.cfg).GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []cetypes.GroupDefinition{{
			Type: cetypes.GroupDefinitionTypeDimension,
			Key:  aws.String("SERVICE"),
		}},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAWSCall, err)
	}

	summary := &CostSummary{Start: start, End: end}
	for _, period := range out.ResultsByTime {
		for _, group := range period.Groups {
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok {
				continue
			}
			amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				continue
			}
			if summary.Currency == "" {
				summary.Currency = aws.ToString(metric.Unit)
			}
			summary.Total += amount
			if len(group.Keys) > 0 {
				summary.Services = append(summary.Services, ServiceCost{
					Service: group.Keys[0],
					Amount:  amount,
				})
			}
		}
	}
	return summary, nil
}
