// Package config loads tinyvue component files.
//
// A component file is YAML:
//
//	name: greeting
//	selector: "#app"
//	template: |
//	  <h3>{{ state.title }}</h3>
//	  <p>{{ count }} clicks</p>
//	data:
//	  count: 0
//	setup:
//	  state:
//	    title: hello
//
// Keys under setup shadow keys under data. Nested mappings become observed
// records the first time a render reads them.
//
// # Usage
//
//	c, err := config.Load("greeting.yaml")
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
package config
