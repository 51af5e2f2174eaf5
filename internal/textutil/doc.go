// Package textutil sanitizes user-supplied names into strings that are safe
// to use as filenames and directory names.
package textutil
