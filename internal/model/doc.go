package model

// Package model defines the program playlist data structures: a Program is a
// named, colored, timed sequence of text lines and Programs is an ordered
// collection of them with one marked active. Construction validates the shape;
// lookups report a missing selection explicitly instead of guessing.
