package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

// resolveRegion picks the final region after SDK config loading.
//
// sdkRegion already incorporates an explicit region, AWS_REGION /
// AWS_DEFAULT_REGION and the shared profile. imdsRegion is only consulted
// when the SDK found nothing.
func resolveRegion(sdkRegion, imdsRegion string) string {
	if sdkRegion != "" {
		return sdkRegion
	}
	return imdsRegion
}

// lookupIMDSRegion asks the EC2 instance metadata service for the region.
// Failures yield "" so that the caller reports a missing region instead.
func lookupIMDSRegion(ctx context.Context, awsCfg aws.Config, timeout time.Duration) string {
	if timeout <= 0 {
		timeout = DefaultIMDSTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := imds.NewFromConfig(awsCfg).GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil || out == nil {
		return ""
	}
	return out.Region
}
