// Package specs parses raw product specification strings into normalized
// key/value mappings.
//
// A raw specification is a pipe-delimited list of "key: value" fragments,
// typically scraped with glued compound identifiers such as
// "ProductDimensions". The Parser splits fragments, trims tokens, and runs
// each through an ai.Normalizer so the graph ends up with readable
// specification keys. Reserved identification keys (ASIN by default) bypass
// normalization entirely.
//
// Normalizer outages are surfaced as ErrNormalizationUnavailable after a
// bounded retry, and a configurable FallbackPolicy decides whether the
// record aborts, the fragment drops, or the raw text goes through.
package specs
