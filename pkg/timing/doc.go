// Package timing provides the timing wrapper variant.
//
// The timing middleware reads a Clock immediately before forwarding a call and
// again immediately after it returns, then hands one Measurement to a Reporter.
// Nothing is retained between calls.
package timing
