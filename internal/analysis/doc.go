// Package analysis derives performance signals from raw video metadata.
//
// Everything here is a pure function of its inputs: duration and age
// normalization, rate metrics, hook classification, title pattern mining and
// channel/global ranking. Fetching and caching live in the usecase layer.
package analysis
