// Package spectrum provides the frequency-domain helpers behind the
// equalizer display: the logarithmic frequency axis, bin interpolation, and
// an [Analyzer] that turns post-EQ audio into a smoothed dB spectrum.
package spectrum
