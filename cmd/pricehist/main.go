package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/joho/godotenv"

	"gamecal/internal/logger"
	"gamecal/internal/pricing"
	"gamecal/internal/storage"
)

var (
	profile     = flag.String("profile", os.Getenv("AWS_PROFILE"), "AWS CLI profile name (or env: AWS_PROFILE)")
	serviceCode = flag.String("service", "AmazonEC2", "AWS service code")
	region      = flag.String("analyze-region", "us-east-1", "Region whose instance types are analyzed")
	cacheDir    = flag.String("cache-dir", "cache", "Directory for downloaded price list files")
	lookbacks   = flag.String("lookback-days", "1,30,90,180,365", "Comma-separated day offsets to query")
	debug       = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *debug {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	ctx := context.Background()

	opts := []func(*config.LoadOptions) error{config.WithRegion(pricing.APIRegion)}
	if *profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(*profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading AWS config: %v\n", err)
		os.Exit(1)
	}

	cache, err := storage.NewCache(*cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing cache: %v\n", err)
		os.Exit(1)
	}

	svc := pricing.NewService(awspricing.NewFromConfig(cfg), cache)

	now := time.Now()
	for _, days := range parseLookbacks(*lookbacks) {
		date := now.AddDate(0, 0, -days)
		fmt.Printf("Finding price lists for %s...\n", date.Format("2006-01-02"))

		arns, err := svc.ListVersions(ctx, *serviceCode, date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing price lists: %v\n", err)
			continue
		}
		if len(arns) == 0 {
			fmt.Printf("No price lists found for %s\n", date.Format("2006-01-02"))
			continue
		}

		arn := pricing.SelectNewest(arns)
		timestamp, err := pricing.TimestampFromARN(arn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("Found %d price lists; using version published %s\n", len(arns), pricing.EffectiveDate(timestamp))

		data, err := svc.Fetch(ctx, *serviceCode, arn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error downloading price list: %v\n", err)
			continue
		}

		offer, err := pricing.ParseOffer(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price list: %v\n", err)
			continue
		}

		analysis, err := pricing.Analyze(offer, *region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing price list: %v\n", err)
			continue
		}

		fmt.Printf("Found %d RI-eligible instance types and %d Savings Plan only instance types\n",
			len(analysis.RIEligible), len(analysis.SavingsPlanOnly))
	}
}

func parseLookbacks(s string) []int {
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var d int
		if _, err := fmt.Sscanf(part, "%d", &d); err == nil && d >= 0 {
			days = append(days, d)
		}
	}
	return days
}
