// Package signal provides streaming test signals for driving the
// equalizer: white, pink and brown noise generated block by block without
// allocation.
package signal
