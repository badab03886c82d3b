// Package textcolor estimates the color of text inside a small image region.
//
// The region is converted to luminance, locally equalized with CLAHE,
// split into two classes with Otsu's threshold, and the most frequent
// original color of the minority class is reported as the text color.
package textcolor
