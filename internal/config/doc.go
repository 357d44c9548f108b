// Package config loads the bone-renamer YAML configuration.
//
// A configuration lists the preset tables in the order they are applied,
// along with loading, caching and skeleton document options. Every field is
// optional; DefaultConfig describes the two stock tables.
//
// Example:
//
//	tables:
//	  - name: bones
//	    path: bones_dictionary.csv
//	  - name: fingers
//	    path: bones_fingers_dictionary.csv
//	    layout: rows
//	strict: false
//	log_level: info
//	cache:
//	  enabled: true
//	  path: .bone-renamer-cache.db
//	skeleton:
//	  nodes: $.nodes[*]
//	  name_key: name
package config
