// Package profile synthesizes fine-resolution load profiles from coarse base
// shapes.
//
// A base shape of H points is upsampled by linear interpolation at a step of
// r coarse indices, extrapolating the last segment until exactly T points
// exist. Each draw adds independent N(0, sigma) noise per point and rescales
// the result to [0, 1], so every non-degenerate profile has min 0 and max 1.
//
// Randomness comes from an explicitly owned Stream. In ModeSerial one stream
// is seeded per build and consumed one draw per load, in load iteration
// order; reordering loads changes the output. ModeSubstream instead derives a
// stream per load index (SubSeed), which makes every draw a pure function of
// (shape, seed, index) and safe to compute in parallel, at the cost of
// different values than ModeSerial.
package profile
