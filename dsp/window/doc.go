// Package window generates the analysis windows used by the output
// spectrum analyzer.
package window
