// Package frequency builds deterministic word-frequency tables from
// translated titles. Tokenization keeps letter and digit runs, case is
// folded for caseless comparison, and results are ordered by count
// descending with an alphabetical tiebreak so identical input always
// yields an identical table.
package frequency
