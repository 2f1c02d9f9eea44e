// Package mapping reads bridge declarations from a YAML file, as an
// alternative or a supplement to doc comment directives.
//
// # Schema
//
//	version: "1"
//	mappings:
//	  - native: geometry.Shape       # short or full import path
//	    bridge: pygeom.PyShape       # resolved like a //bridge:map argument
//	    fields:
//	      - name: Size
//	        from: sizeFromBridge     # bridge -> native override
//	        into: sizeToBridge       # native -> bridge override
//
// # Merging
//
// A mapping for a type that also carries a //bridge:map directive must name
// the same bridge type. Field entries fill override directions the struct tag
// leaves empty; setting a direction both places to different expressions is
// an error. Types declared only here take their overrides only from here.
package mapping
