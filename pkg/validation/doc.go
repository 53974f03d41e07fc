// Package validation evaluates form-field answers against their declared data
// type and restriction set, producing ordered human-readable messages. Checks
// are pure and total: malformed numeric input parses to NaN and fails the
// comparison instead of raising, unknown data types and restriction keys are
// treated as always valid, and an empty value is exempt from everything but
// the required check. Message and pattern tables live in an immutable Catalog
// constructed up front, so validators are safe for concurrent use.
package validation
