package ir

import (
	"encoding/json"
	"fmt"
)

// JSON interchange for declaration sets. Front-ends that run out of process
// hand the engine a single JSON document:
//
//	{"decls": [
//	  {"kind": "struct", "name": "Point", "fields": [...]},
//	  {"kind": "enum", "name": "Shape", "variants": [...]},
//	  {"kind": "fn", "name": "fetch", "params": [...], "return": {...}}
//	]}

type declEnvelope struct {
	Kind string          `json:"kind"`
	Body json.RawMessage `json:"-"`
}

type declSetJSON struct {
	Decls []json.RawMessage `json:"decls"`
}

// UnmarshalJSON decodes a declaration set, preserving source order across
// declaration kinds.
func (s *DeclSet) UnmarshalJSON(data []byte) error {
	var raw declSetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Decls = make([]Decl, 0, len(raw.Decls))
	for i, msg := range raw.Decls {
		var env declEnvelope
		if err := json.Unmarshal(msg, &env); err != nil {
			return fmt.Errorf("decl %d: %w", i, err)
		}

		var d Decl
		switch env.Kind {
		case "struct":
			d = new(StructDecl)
		case "enum":
			d = new(EnumDecl)
		case "fn":
			d = new(FunctionSig)
		default:
			return fmt.Errorf("decl %d: unknown kind %q", i, env.Kind)
		}
		if err := json.Unmarshal(msg, d); err != nil {
			return fmt.Errorf("decl %d (%s): %w", i, env.Kind, err)
		}
		s.Decls = append(s.Decls, d)
	}
	return nil
}

// MarshalJSON encodes the declaration set in the same envelope format.
func (s *DeclSet) MarshalJSON() ([]byte, error) {
	out := declSetJSON{Decls: make([]json.RawMessage, 0, len(s.Decls))}
	for _, d := range s.Decls {
		var kind string
		switch d.(type) {
		case *StructDecl:
			kind = "struct"
		case *EnumDecl:
			kind = "enum"
		case *FunctionSig:
			kind = "fn"
		default:
			return nil, fmt.Errorf("unknown declaration type %T", d)
		}

		body, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		// Splice the kind tag into the object.
		sep := ","
		if len(body) == 2 { // empty object
			sep = ""
		}
		tagged := append([]byte(`{"kind":"`+kind+`"`+sep), body[1:]...)
		out.Decls = append(out.Decls, tagged)
	}
	return json.Marshal(out)
}
