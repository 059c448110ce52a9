// Package face holds the clock face scene and the logic that moves its markers.
//
// Every marker has a clock position (where it sits when the face shows the
// time), a scatter position (random resting spot) and a display position that
// is always a truncating linear blend of the two. The Face controller reacts to
// three host events: minute ticks recompute the clock layout, tilt samples run
// the hysteresis trigger, and animation progress blends display positions.
//
// All state lives in a Scene owned by one Face. The package does no locking:
// callers dispatch every event from a single goroutine.
package face
