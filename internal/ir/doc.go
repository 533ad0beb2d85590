// Package ir provides the typed constant values used in search terms.
//
// This package contains value definitions only. Every other internal package
// may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types (use int64 for numbers) so encoded parameters are exact
//   - NULL is an explicit value (IRNull), never a nil interface
//   - Times are carried as IRTime and encoded per column by the mapping codecs
package ir
