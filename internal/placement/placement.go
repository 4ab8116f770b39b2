package placement

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"gamecal/internal/logger"
)

// ViableScore is the default score a zone must exceed before the capacity
// is worth bidding on. Scores run 1-10.
const ViableScore = 5

// ScoreClient is the EC2 surface this package needs.
type ScoreClient interface {
	GetSpotPlacementScores(ctx context.Context, params *ec2.GetSpotPlacementScoresInput, optFns ...func(*ec2.Options)) (*ec2.GetSpotPlacementScoresOutput, error)
}

// Query describes the capacity being scored.
type Query struct {
	TargetCapacity int32
	InstanceTypes  []string
	Regions        []string

	// EscalationTypes are added to InstanceTypes for a single retry when no
	// zone scores above the threshold with the initial set.
	EscalationTypes []string

	// Threshold is the score a zone must exceed to count as viable.
	// Zero means ViableScore.
	Threshold int32
}

// DefaultQuery sizes the request the way capacity planning for a memory
// heavy workload starts: a small vCPU target against the r5 family, one
// availability zone at a time.
func DefaultQuery() Query {
	return Query{
		TargetCapacity:  5,
		InstanceTypes:   []string{"r5.4xlarge", "r5.8xlarge"},
		Regions:         []string{"eu-west-1"},
		EscalationTypes: []string{"r5.12xlarge"},
		Threshold:       ViableScore,
	}
}

// ZoneScore is one availability zone's placement score.
type ZoneScore struct {
	AvailabilityZoneID string `json:"availability_zone_id"`
	Region             string `json:"region"`
	Score              int32  `json:"score"`
}

// Viable reports whether the zone scored above the cutoff. The cutoff is
// exclusive.
func (z ZoneScore) Viable(threshold int32) bool {
	return z.Score > threshold
}

// Evaluation is the outcome of scoring a query, after any escalation.
type Evaluation struct {
	Scores    []ZoneScore `json:"scores"`
	Escalated bool        `json:"escalated"`
	Threshold int32       `json:"threshold"`
}

// Usable reports whether at least one zone scored above the cutoff.
func (e *Evaluation) Usable() bool {
	for _, score := range e.Scores {
		if score.Viable(e.Threshold) {
			return true
		}
	}
	return false
}

// Service queries spot placement scores.
type Service struct {
	ec2 ScoreClient
}

// NewService creates a Service from a concrete EC2 client.
func NewService(client ScoreClient) *Service {
	return &Service{ec2: client}
}

// Evaluate scores the query and, if no zone is viable, retries once with
// the escalation types added. The second result is returned either way.
func (s *Service) Evaluate(ctx context.Context, q Query) (*Evaluation, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = ViableScore
	}

	scores, err := s.fetchScores(ctx, q, q.InstanceTypes, threshold)
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{Scores: scores, Threshold: threshold}
	if eval.Usable() || len(q.EscalationTypes) == 0 {
		return eval, nil
	}

	logger.Debug("no viable zones, trying again with bigger machines", logger.Fields{
		"escalation_types": q.EscalationTypes,
	})

	escalated := append(append([]string{}, q.InstanceTypes...), q.EscalationTypes...)
	scores, err = s.fetchScores(ctx, q, escalated, threshold)
	if err != nil {
		return nil, err
	}

	return &Evaluation{Scores: scores, Escalated: true, Threshold: threshold}, nil
}

func (s *Service) fetchScores(ctx context.Context, q Query, instanceTypes []string, threshold int32) ([]ZoneScore, error) {
	out, err := s.ec2.GetSpotPlacementScores(ctx, &ec2.GetSpotPlacementScoresInput{
		TargetCapacity:         aws.Int32(q.TargetCapacity),
		TargetCapacityUnitType: types.TargetCapacityUnitTypeVcpu,
		SingleAvailabilityZone: aws.Bool(true),
		InstanceTypes:          instanceTypes,
		RegionNames:            q.Regions,
	})
	if err != nil {
		return nil, fmt.Errorf("getting spot placement scores: %w", err)
	}

	scores := make([]ZoneScore, 0, len(out.SpotPlacementScores))
	for _, score := range out.SpotPlacementScores {
		zs := ZoneScore{
			AvailabilityZoneID: aws.ToString(score.AvailabilityZoneId),
			Region:             aws.ToString(score.Region),
			Score:              aws.ToInt32(score.Score),
		}
		if zs.Viable(threshold) {
			logger.Debug("found a viable zone", logger.Fields{
				"zone":  zs.AvailabilityZoneID,
				"score": zs.Score,
			})
		}
		scores = append(scores, zs)
	}

	return scores, nil
}
