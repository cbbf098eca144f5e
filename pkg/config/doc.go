// Package config provides a hierarchical configuration store backed by YAML
// files that keeps the comments people write in them. Values live in an
// ordered tree addressed by dotted paths, and comment blocks ("headers") are
// stored per path, independent of the tree, so they survive any number of
// load and save cycles.
//
// # Basic Usage
//
// The main entry point is [NewFile], which binds a [Document] to a path:
//
//	cfg, err := config.NewFile("plugins/shop/config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Load() // a missing file loads as an empty document
//
//	price := cfg.GetInt("shop.price", 10) // stores 10 when missing
//	cfg.SetNodeHeader("shop.price", "Price of one item, in coins")
//	cfg.SetHeader("Shop configuration")
//
//	cfg.Save() // reports "configuration generated" the first time
//
// # File Format
//
// The document header is written at the top of the file, one "#> " line per
// line of text, followed by a blank line:
//
//	#> Shop configuration
//
//	shop:
//	  # Price of one item, in coins
//	  price: 10
//
// Ordinary "#" comments directly above a key become that key's header and
// are written back above it at its indentation. "#> " lines that appear
// after the first key are treated as ordinary comments.
//
// A key consisting of a lone "*" is written unquoted and quoted for the
// YAML codec, and colour codes written as "&" plus a code character are held
// in memory with a "§" marker. Both rules live in one [EscapeTable] used in
// both directions.
//
// # Paths
//
// The path of every key line is derived from indentation alone by an
// [IndentTracker] while the file streams past, so headers are matched to
// keys by path and never by position.
//
// A key that itself contains "." is escaped in paths, so the path a\.b
// names the top-level key "a.b" while a.b names "b" inside "a". A backslash
// in a key is written as \\ in the path. See [EscapeKey].
//
// Comments above list items belong to no key and are not kept.
//
// # Multi-line Strings
//
// Strings containing newlines are saved as a list of their lines and load
// back as that list. [Node.GetText] joins such a list again.
package config
