package dart

import "encoding/json"

// Descriptor is the marshaling table handed to the runtime transport: for
// every generated type the identifiers of its encode/decode procedures, and
// for every bound function its target name and wrapping flags.
type Descriptor struct {
	ApiClass string        `json:"api_class"`
	Types    []TypeCodec   `json:"types"`
	Funcs    []FuncBinding `json:"functions"`
}

// TypeCodec maps a source type name to its generated codec pair.
type TypeCodec struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Encode string `json:"encode"`
	Decode string `json:"decode"`
}

// FuncBinding maps a source function to its generated method.
type FuncBinding struct {
	Name     string `json:"name"`
	Target   string `json:"target"`
	Decode   string `json:"decode"`
	Async    bool   `json:"async"`
	Fallible bool   `json:"fallible"`
}

// MarshalIndent renders the descriptor as stable, human-diffable JSON.
func (d *Descriptor) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
