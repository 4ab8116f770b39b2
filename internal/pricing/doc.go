// Package pricing retrieves historical AWS price list files and analyzes
// which EC2 instance types were purchasable as Reserved Instances versus
// Savings Plans only at a point in time. The price list API keeps every
// published version, so the history is reconstructed by asking for the
// newest list effective on a given date.
package pricing
