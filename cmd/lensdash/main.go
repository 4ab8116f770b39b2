package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/joho/godotenv"

	"gamecal/internal/lens"
	"gamecal/internal/logger"
)

var (
	profile   = flag.String("profile", os.Getenv("AWS_PROFILE"), "AWS CLI profile name (or env: AWS_PROFILE)")
	region    = flag.String("region", "us-east-1", "AWS region")
	prefix    = flag.String("prefix", "", "Bucket name prefix to include (required)")
	dashboard = flag.String("name", "", "Storage Lens dashboard name to create or overwrite (required)")
	debug     = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *prefix == "" || *dashboard == "" {
		fmt.Fprintln(os.Stderr, "Error: --prefix and --name are required")
		flag.Usage()
		os.Exit(1)
	}

	if *debug {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	ctx := context.Background()

	opts := []func(*config.LoadOptions) error{config.WithRegion(*region)}
	if *profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(*profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading AWS config: %v\n", err)
		os.Exit(1)
	}

	svc := lens.NewService(
		s3.NewFromConfig(cfg),
		s3control.NewFromConfig(cfg),
		sts.NewFromConfig(cfg),
	)

	buckets, err := svc.BucketsByPrefix(ctx, *prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing buckets: %v\n", err)
		os.Exit(1)
	}
	if len(buckets) > lens.MaxBuckets {
		fmt.Fprintf(os.Stderr, "Error: found %d buckets and the max is %d\n", len(buckets), lens.MaxBuckets)
		os.Exit(1)
	}

	fmt.Printf("Found %d (out of %d max) buckets for the dashboard\n", len(buckets), lens.MaxBuckets)

	if err := svc.PutDashboard(ctx, *dashboard, buckets); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating dashboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Dashboard %q updated with %d buckets\n", *dashboard, len(buckets))
}
