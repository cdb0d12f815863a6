// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE schema validation steps shared by
// xdgmenu's configuration loader:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate the unified value
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	value, err := cueutil.Unify(schema, "#Config", data, cueutil.WithFilename(path))
//	if err != nil {
//	    return err // Error includes the CUE path of the offending field
//	}
//	var m map[string]any
//	err = value.Decode(&m)
package cueutil
