// Package verification orchestrates single, bulk, and discovery verification
// on top of the deliverability engine.
//
// The dispatcher processes bulk requests strictly in input order with no
// fan-out; one failing address aborts the remaining batch. The finder probes
// generated candidates in likelihood order, returning the first SMTP-confirmed
// hit immediately and otherwise the highest-confidence candidate seen.
//
// Usage is metered after an operation completes. A metering failure is logged
// (it is a billing gap worth alerting on) but never invalidates the result
// already produced for the caller.
package verification
