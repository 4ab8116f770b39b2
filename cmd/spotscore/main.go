package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/joho/godotenv"

	"gamecal/internal/logger"
	"gamecal/internal/placement"
)

var (
	profile       = flag.String("profile", os.Getenv("AWS_PROFILE"), "AWS CLI profile name (or env: AWS_PROFILE)")
	regions       = flag.String("regions", "eu-west-1", "Comma-separated regions to score")
	instanceTypes = flag.String("instance-types", "r5.4xlarge,r5.8xlarge", "Comma-separated instance types")
	escalation    = flag.String("escalation-types", "r5.12xlarge", "Instance types added on retry when no zone is viable")
	capacity      = flag.Int("capacity", 5, "Target capacity in vCPUs")
	threshold     = flag.Int("threshold", placement.ViableScore, "Score a zone must exceed to count as viable")
	debug         = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *debug {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	ctx := context.Background()

	opts := []func(*config.LoadOptions) error{}
	if *profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(*profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading AWS config: %v\n", err)
		os.Exit(1)
	}

	query := placement.Query{
		TargetCapacity:  int32(*capacity),
		InstanceTypes:   splitList(*instanceTypes),
		Regions:         splitList(*regions),
		EscalationTypes: splitList(*escalation),
		Threshold:       int32(*threshold),
	}

	svc := placement.NewService(ec2.NewFromConfig(cfg))
	eval, err := svc.Evaluate(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating placement scores: %v\n", err)
		os.Exit(1)
	}

	for _, score := range eval.Scores {
		marker := " "
		if score.Viable(eval.Threshold) {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-10s score %d\n", marker, score.AvailabilityZoneID, score.Region, score.Score)
	}

	if eval.Escalated {
		fmt.Println("No viable zones with the initial set; scores above include the escalation types.")
	}

	if eval.Usable() {
		fmt.Println("You can use these machines")
	} else {
		fmt.Println("No zone scored high enough; consider other regions or instance families.")
		os.Exit(1)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
