package config

import (
	"fmt"
	"sort"
)

// knownKeys maps each manifest section to its recognized keys.
// An empty map means the section does not contain a fixed key set.
var knownKeys = map[string]map[string]bool{
	"": {
		"project":   true,
		"build":     true,
		"framework": true,
		"tests":     true,
	},
	"project": {
		"name":        true,
		"description": true,
	},
	"build": {
		"root":       true,
		"source_ext": true,
		"compiler":   true,
	},
	"framework": {
		"entry_candidates": true,
		"result_flag":      true,
	},
}

// unknownKeyWarnings reports manifest keys that the typed decode would
// silently drop. Unknown keys are warnings, not errors: a manifest written
// for a newer testreg should still load.
func unknownKeyWarnings(doc interface{}) []string {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil
	}

	var warnings []string
	collect := func(section string, m map[string]interface{}) {
		known := knownKeys[section]
		for key := range m {
			if !known[key] {
				field := key
				if section != "" {
					field = section + "." + key
				}
				warnings = append(warnings, fmt.Sprintf("unknown manifest key %q (ignored)", field))
			}
		}
	}

	collect("", root)
	for section := range knownKeys {
		if section == "" {
			continue
		}
		if m, ok := root[section].(map[string]interface{}); ok {
			collect(section, m)
		}
	}

	sort.Strings(warnings)
	return warnings
}
