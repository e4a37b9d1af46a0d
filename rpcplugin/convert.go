package rpcplugin

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct marshals v to JSON and decodes it into a structpb.Struct. v
// must marshal to a JSON object.
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpcplugin: marshal payload: %w", err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		return nil, fmt.Errorf("rpcplugin: payload is not a JSON object: %w", err)
	}

	s, err := structpb.NewStruct(asMap)
	if err != nil {
		return nil, fmt.Errorf("rpcplugin: build struct: %w", err)
	}
	return s, nil
}

// FromStruct decodes s into v via its JSON representation.
func FromStruct(s *structpb.Struct, v any) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("rpcplugin: marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpcplugin: unmarshal into target: %w", err)
	}
	return nil
}
