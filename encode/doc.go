// Package encode renders ir trees as JSON or YAML text.
//
// Scalars are always written as double-quoted strings and the undefined
// marker is always written as null, so that every encoding parses back
// (see package parse) into an equal tree:
//
//	{
//	  "name": "x",
//	  "tags": [],
//	  "meta": {},
//	  "gone": null
//	}
//
// JSON output uses the layout of JSON.stringify(v, null, 2).  YAML output
// uses block style, or flow style with EncodeWire.
package encode
