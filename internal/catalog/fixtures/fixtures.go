// Package fixtures embeds the default car reference data.
package fixtures

import _ "embed"

// CarData is the YAML seed for makes, models and options.
//
//go:embed cardata.yaml
var CarData []byte
