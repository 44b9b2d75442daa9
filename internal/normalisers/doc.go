// Package normalisers holds implementations of the driven Normaliser port.
// Each normaliser turns the raw entries of one feed dialect into display
// records.
//
// Only the Blogger dialect exists today; see the blogger subpackage.
package normalisers
