// Package chat holds the value types shared by the markup compiler and its
// consumers: legacy and literal colors, style flags, click and hover
// actions, inline icons, styled runs and the neutral component record that
// chat platforms serialize.
//
// Everything here is immutable after package initialization and safe for
// concurrent use.
package chat
