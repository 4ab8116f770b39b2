// Package placement queries EC2 spot placement scores to judge whether a
// set of instance types has enough spot capacity in a region, escalating to
// larger instance types when the initial set scores too low.
package placement
