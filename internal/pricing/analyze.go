package pricing

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Offer is the subset of the AWS offer file format the analysis needs.
// Terms are keyed category -> SKU -> offer term code.
type Offer struct {
	Products map[string]Product                    `json:"products"`
	Terms    map[string]map[string]map[string]Term `json:"terms"`
}

// Product is one purchasable SKU.
type Product struct {
	SKU           string            `json:"sku"`
	ProductFamily string            `json:"productFamily"`
	Attributes    map[string]string `json:"attributes"`
}

// Term is one purchase option for a SKU.
type Term struct {
	SKU string `json:"sku"`
}

// Analysis splits a region's instance types by purchase option.
type Analysis struct {
	// RIEligible can be bought as Reserved Instances.
	RIEligible []string `json:"ri_eligible"`

	// SavingsPlanOnly have Savings Plan terms but no RI terms.
	SavingsPlanOnly []string `json:"savings_plan_only"`
}

// regionToLocation maps region codes to the "location" attribute strings
// offer files use.
var regionToLocation = map[string]string{
	"us-east-1": "US East (N. Virginia)",
}

// ParseOffer decodes a raw offer file.
func ParseOffer(data []byte) (*Offer, error) {
	var offer Offer
	if err := json.Unmarshal(data, &offer); err != nil {
		return nil, fmt.Errorf("parsing offer file: %w", err)
	}
	return &offer, nil
}

// Analyze reports which Compute Instance types in the region are RI
// eligible and which only carry Savings Plan terms.
func Analyze(offer *Offer, region string) (*Analysis, error) {
	location, ok := regionToLocation[region]
	if !ok {
		return nil, fmt.Errorf("no location mapping for region %s", region)
	}

	// SKU -> instance type, restricted to compute instances in the region.
	instanceBySKU := make(map[string]string)
	for _, product := range offer.Products {
		if product.ProductFamily != "Compute Instance" {
			continue
		}
		if product.Attributes["location"] != location {
			continue
		}
		if instanceType := product.Attributes["instanceType"]; instanceType != "" {
			instanceBySKU[product.SKU] = instanceType
		}
	}

	riEligible := make(map[string]bool)
	for sku := range offer.Terms["Reserved"] {
		if instanceType, ok := instanceBySKU[sku]; ok {
			riEligible[instanceType] = true
		}
	}

	spOnly := make(map[string]bool)
	for sku := range offer.Terms["SavingsPlan"] {
		instanceType, ok := instanceBySKU[sku]
		if ok && !riEligible[instanceType] {
			spOnly[instanceType] = true
		}
	}

	return &Analysis{
		RIEligible:      sortedKeys(riEligible),
		SavingsPlanOnly: sortedKeys(spOnly),
	}, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
