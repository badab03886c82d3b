// Package typeset measures and draws text with an OpenType font using
// golang.org/x/image/font/opentype.
//
// Outlines are drawn by stamping the text in the stroke color at every
// integer offset within the stroke radius, then drawing the fill on top.
package typeset
