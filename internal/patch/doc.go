// Package patch edits existing project files in place.
//
// Every mutator reads the whole file, applies its change in memory and
// writes the result once, so a failed edit leaves the file untouched. A
// missing anchor (root element, class declaration, include line, search
// snippet) is reported as clierr.ErrAnchorNotFound.
package patch
