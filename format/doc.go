// Package format names the text formats treedit reads and writes.
package format
