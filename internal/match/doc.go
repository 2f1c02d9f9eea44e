// Package match ranks identifier spellings so diagnostics can offer
// "did you mean" suggestions for misspelled field and type names.
//
// Names are compared after normalization (case folded, separators removed),
// using the Levenshtein edit distance.
package match
