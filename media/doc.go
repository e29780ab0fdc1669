// Package media holds the pure binary codec helpers of the studio pipeline:
// base64 payload decoding, raw 16-bit PCM normalization, WAV containering and
// data-URI attachment parsing. All functions are side-effect free transforms;
// the WAV byte layout is the one bit-exact artifact the core must produce.
package media
