// Package parallel provides the bounded worker pool used to fan per-load
// profile draws out across goroutines.
package parallel
