// Package config loads schema definitions from YAML or JSON files and
// compiles them into record schemas.
//
// A definition file declares the resource, its primary key, per-field rules,
// and record-level validators:
//
//	name: users
//	basePath: /api/users
//	fields:
//	  - name: name
//	    required: true
//	    minLength: 1
//	  - name: email
//	    format: email
//	validators:
//	  - expr: "age == nil || age >= 18"
//	    field: age
//	    message: must be an adult
//
// Definition.Schema compiles the rules into the equivalent validation
// pipeline and returns a ready-to-use *record.Schema.
package config
