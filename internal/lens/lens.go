package lens

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"gamecal/internal/logger"
)

// MaxBuckets is the Storage Lens limit on explicitly included buckets per
// dashboard configuration.
const MaxBuckets = 50

// BucketLister lists the account's buckets.
type BucketLister interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// ConfigWriter writes Storage Lens configurations.
type ConfigWriter interface {
	PutStorageLensConfiguration(ctx context.Context, params *s3control.PutStorageLensConfigurationInput, optFns ...func(*s3control.Options)) (*s3control.PutStorageLensConfigurationOutput, error)
}

// IdentityProvider resolves the calling account.
type IdentityProvider interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Service wires the three AWS clients a dashboard update needs.
type Service struct {
	s3        BucketLister
	s3control ConfigWriter
	sts       IdentityProvider
}

// NewService creates a Service from concrete AWS clients.
func NewService(s3Client BucketLister, controlClient ConfigWriter, stsClient IdentityProvider) *Service {
	return &Service{
		s3:        s3Client,
		s3control: controlClient,
		sts:       stsClient,
	}
}

// BucketsByPrefix returns the names of all buckets whose name starts with
// the given prefix.
func (s *Service) BucketsByPrefix(ctx context.Context, prefix string) ([]string, error) {
	out, err := s.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}

	var names []string
	for _, bucket := range out.Buckets {
		name := aws.ToString(bucket.Name)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}

	logger.Debug("resolved bucket prefix", logger.Fields{
		"prefix":  prefix,
		"buckets": len(names),
	})

	return names, nil
}

// PutDashboard creates or overwrites the named dashboard, scoped to the
// given buckets, with activity metrics enabled at both account and bucket
// level. Exceeding MaxBuckets is an error; the API would reject it anyway,
// but with a less helpful message.
func (s *Service) PutDashboard(ctx context.Context, name string, buckets []string) error {
	if len(buckets) > MaxBuckets {
		return fmt.Errorf("found %d buckets and the max is %d", len(buckets), MaxBuckets)
	}

	identity, err := s.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("resolving account: %w", err)
	}
	accountID := aws.ToString(identity.Account)

	arns := make([]string, len(buckets))
	for i, bucket := range buckets {
		arns[i] = "arn:aws:s3:::" + bucket
	}

	cfg := types.StorageLensConfiguration{
		Id:        aws.String(name),
		IsEnabled: true,
		AccountLevel: &types.AccountLevel{
			ActivityMetrics: &types.ActivityMetrics{IsEnabled: true},
			BucketLevel: &types.BucketLevel{
				ActivityMetrics: &types.ActivityMetrics{IsEnabled: true},
			},
		},
		Include: &types.Include{
			Buckets: arns,
		},
	}

	logger.Info("updating storage lens dashboard", logger.Fields{
		"dashboard": name,
		"account":   accountID,
		"buckets":   len(buckets),
	})

	_, err = s.s3control.PutStorageLensConfiguration(ctx, &s3control.PutStorageLensConfigurationInput{
		AccountId:                aws.String(accountID),
		ConfigId:                 aws.String(name),
		StorageLensConfiguration: &cfg,
	})
	if err != nil {
		return fmt.Errorf("putting storage lens configuration: %w", err)
	}

	return nil
}
