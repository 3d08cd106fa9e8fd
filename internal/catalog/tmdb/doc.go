// Package tmdb is a small TMDB v3 client covering the details and search
// endpoints the resolver needs.
package tmdb
