// Package pagination implements page/limit queries over any Source that can
// count and find records, returning the page together with its paging metadata.
package pagination
