package pricing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecal/internal/pricing"
	"gamecal/internal/storage"
)

type mockPriceListClient struct {
	pages    [][]string // ARNs per page
	fileURL  string
	listReqs []*awspricing.ListPriceListsInput
	urlReqs  []*awspricing.GetPriceListFileUrlInput
}

func (m *mockPriceListClient) ListPriceLists(_ context.Context, params *awspricing.ListPriceListsInput, _ ...func(*awspricing.Options)) (*awspricing.ListPriceListsOutput, error) {
	m.listReqs = append(m.listReqs, params)

	page := 0
	if params.NextToken != nil {
		page = len(m.listReqs) - 1
	}

	out := &awspricing.ListPriceListsOutput{}
	for _, arn := range m.pages[page] {
		out.PriceLists = append(out.PriceLists, types.PriceList{PriceListArn: aws.String(arn)})
	}
	if page < len(m.pages)-1 {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func (m *mockPriceListClient) GetPriceListFileUrl(_ context.Context, params *awspricing.GetPriceListFileUrlInput, _ ...func(*awspricing.Options)) (*awspricing.GetPriceListFileUrlOutput, error) {
	m.urlReqs = append(m.urlReqs, params)
	return &awspricing.GetPriceListFileUrlOutput{Url: aws.String(m.fileURL)}, nil
}

func TestListVersions_Paginates(t *testing.T) {
	client := &mockPriceListClient{pages: [][]string{
		{"arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20240101000000/us-east-1"},
		{"arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20240201000000/us-east-1"},
	}}
	svc := pricing.NewService(client, nil)

	arns, err := svc.ListVersions(context.Background(), "AmazonEC2", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, arns, 2)
	assert.Len(t, client.listReqs, 2)
	assert.Equal(t, "AmazonEC2", aws.ToString(client.listReqs[0].ServiceCode))
	assert.Equal(t, "USD", aws.ToString(client.listReqs[0].CurrencyCode))
	assert.Equal(t, "us-east-1", aws.ToString(client.listReqs[0].RegionCode))
}

func TestSelectNewest(t *testing.T) {
	arns := []string{
		"arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20240101000000/us-east-1",
		"arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20250408165718/us-east-1",
		"arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20240201000000/us-east-1",
	}

	got := pricing.SelectNewest(arns)
	assert.Equal(t, "arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20250408165718/us-east-1", got)

	assert.Equal(t, "", pricing.SelectNewest(nil))
}

func TestTimestampFromARN(t *testing.T) {
	ts, err := pricing.TimestampFromARN("arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20250408165718/us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "20250408165718", ts)

	_, err = pricing.TimestampFromARN("arn:aws:pricing:::price-list/aws/AmazonEC2/USD/invalid/us-east-1")
	require.Error(t, err)
}

func TestEffectiveDate(t *testing.T) {
	assert.Equal(t, "2025-04-08", pricing.EffectiveDate("20250408165718"))
}

func TestFetch_DownloadsAndCaches(t *testing.T) {
	body := `{"products":{},"terms":{}}`
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(body)) // nolint:errcheck
	}))
	defer server.Close()

	cache, err := storage.NewCache(t.TempDir())
	require.NoError(t, err)

	client := &mockPriceListClient{fileURL: server.URL + "/offers/v1.0/aws/AmazonEC2/20250408165718/index.json"}
	svc := pricing.NewService(client, cache)

	arn := "arn:aws:pricing:::price-list/aws/AmazonEC2/USD/20250408165718/us-east-1"

	data, err := svc.Fetch(context.Background(), "AmazonEC2", arn)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, 1, hits)
	require.Len(t, client.urlReqs, 1)
	assert.Equal(t, "JSON", aws.ToString(client.urlReqs[0].FileFormat))

	// Second fetch of the same version must come from cache.
	data, err = svc.Fetch(context.Background(), "AmazonEC2", arn)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
	assert.Equal(t, 1, hits, "cached fetch should not re-download")
	assert.Len(t, client.urlReqs, 1)
}

func TestFetch_BadARN(t *testing.T) {
	svc := pricing.NewService(&mockPriceListClient{}, nil)

	_, err := svc.Fetch(context.Background(), "AmazonEC2", "arn:aws:pricing:::price-list/aws/AmazonEC2/USD/nope/us-east-1")
	require.Error(t, err)
}
