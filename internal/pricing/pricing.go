package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"

	"gamecal/internal/logger"
	"gamecal/internal/storage"
)

// The pricing API only exists in us-east-1.
const APIRegion = "us-east-1"

// arnTimestamp extracts the 14-digit publication timestamp embedded in
// price list ARNs and download URLs, e.g.
// arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20250408165718/us-east-1.
var arnTimestamp = regexp.MustCompile(`/(\d{14})/`)

// PriceListClient is the pricing API surface this package needs.
type PriceListClient interface {
	ListPriceLists(ctx context.Context, params *pricing.ListPriceListsInput, optFns ...func(*pricing.Options)) (*pricing.ListPriceListsOutput, error)
	GetPriceListFileUrl(ctx context.Context, params *pricing.GetPriceListFileUrlInput, optFns ...func(*pricing.Options)) (*pricing.GetPriceListFileUrlOutput, error)
}

// Service lists and downloads historical price list files.
type Service struct {
	client PriceListClient
	cache  *storage.Cache
	http   *http.Client
}

// NewService creates a Service. The cache may be nil, in which case every
// fetch downloads.
func NewService(client PriceListClient, cache *storage.Cache) *Service {
	return &Service{
		client: client,
		cache:  cache,
		http:   &http.Client{Timeout: 5 * time.Minute},
	}
}

// ListVersions returns the ARNs of all price lists for the service that
// were effective on the given date, following pagination.
func (s *Service) ListVersions(ctx context.Context, serviceCode string, date time.Time) ([]string, error) {
	input := &pricing.ListPriceListsInput{
		ServiceCode:   aws.String(serviceCode),
		CurrencyCode:  aws.String("USD"),
		EffectiveDate: aws.Time(date),
		RegionCode:    aws.String(APIRegion),
		MaxResults:    aws.Int32(100),
	}

	var arns []string
	for {
		out, err := s.client.ListPriceLists(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("listing price lists for %s: %w", date.Format("2006-01-02"), err)
		}
		for _, pl := range out.PriceLists {
			arns = append(arns, aws.ToString(pl.PriceListArn))
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	logger.Debug("listed price list versions", logger.Fields{
		"service": serviceCode,
		"date":    date.Format("2006-01-02"),
		"count":   len(arns),
	})

	return arns, nil
}

// SelectNewest returns the most recently published ARN. Publication
// timestamps sort lexically inside the ARN, so a plain descending sort
// suffices. Returns "" for an empty list.
func SelectNewest(arns []string) string {
	if len(arns) == 0 {
		return ""
	}
	sorted := append([]string{}, arns...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	return sorted[0]
}

// TimestampFromARN extracts the 14-digit publication timestamp.
func TimestampFromARN(arn string) (string, error) {
	m := arnTimestamp.FindStringSubmatch(arn)
	if m == nil {
		return "", fmt.Errorf("could not extract timestamp from price list ARN: %s", arn)
	}
	return m[1], nil
}

// EffectiveDate renders a publication timestamp as YYYY-MM-DD.
func EffectiveDate(timestamp string) string {
	if len(timestamp) < 8 {
		return timestamp
	}
	return timestamp[:4] + "-" + timestamp[4:6] + "-" + timestamp[6:8]
}

// Fetch downloads the price list file behind the ARN, consulting the cache
// first. The returned bytes are the raw offer file JSON.
func (s *Service) Fetch(ctx context.Context, serviceCode, arn string) ([]byte, error) {
	timestamp, err := TimestampFromARN(arn)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		data, ok, err := s.cache.Load(serviceCode, timestamp)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Debug("using cached price list", logger.Fields{
				"service":   serviceCode,
				"timestamp": timestamp,
			})
			return data, nil
		}
	}

	urlOut, err := s.client.GetPriceListFileUrl(ctx, &pricing.GetPriceListFileUrlInput{
		PriceListArn: aws.String(arn),
		FileFormat:   aws.String("JSON"),
	})
	if err != nil {
		return nil, fmt.Errorf("getting price list file URL: %w", err)
	}
	url := aws.ToString(urlOut.Url)
	if url == "" {
		return nil, fmt.Errorf("no URL returned for price list %s", arn)
	}

	logger.Info("downloading price list", logger.Fields{
		"service":   serviceCode,
		"timestamp": timestamp,
	})

	data, err := s.download(ctx, url)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(serviceCode, timestamp, data); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func (s *Service) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building price list request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading price list: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading price list: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading price list body: %w", err)
	}
	return data, nil
}
