// Package libdiff compares trees and applies external patches to them.
//
// # Usage
//
//	// structural changes between two snapshots
//	for _, c := range libdiff.Diff(prev, cur) {
//		fmt.Println(c)
//	}
//
//	// line diff of the JSON renderings
//	fmt.Print(libdiff.Unified(prev, cur))
//
//	// RFC 7386 merge patch taking prev to cur
//	patch, err := libdiff.MergePatch(prev, cur)
//
// Patches are exchanged as JSON.  Since the undefined marker is rendered
// as null, a merge patch cannot distinguish setting a key to undefined
// from removing it.
//
// # Related Packages
//
//   - github.com/signadot/treedit/ir - tree representation
//   - github.com/signadot/treedit/encode - renderings used by line diffs
package libdiff
