// Package render composes the raster output of mcgen: item icons with
// amount and durability badges, animated item frames, isometric player
// heads projected from a skin texture, and inventory grids.
//
// Every function here is pure. Inputs are never mutated, each call works on
// buffers it allocates itself, and identical inputs produce byte-identical
// output. The only shared state is the immutable skull geometry.
package render
