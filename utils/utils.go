// Package utils holds small conversion helpers shared across the module.
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// StructToMap converts a struct into a flat map[string]any keyed by the
// struct's JSON field names. Nested objects are preserved verbatim as
// json.RawMessage so their exact representation survives the round trip.
// The report assembler uses this to expose typed reports as flat
// field-name-to-value mappings.
//
// The input must be a struct or a non-nil pointer to one.
func StructToMap[T any](record T) (map[string]any, error) {
	val := reflect.ValueOf(record)
	if !val.IsValid() {
		return nil, fmt.Errorf("input record cannot be nil")
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("input record cannot be a nil pointer to a struct")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input record must be a struct or a pointer to a struct, got %s", val.Kind())
	}

	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("StructToMap: failed to marshal input record to JSON: %w", err)
	}

	var tempMap map[string]any
	if err := json.Unmarshal(jsonBytes, &tempMap); err != nil {
		return nil, fmt.Errorf("StructToMap: failed to unmarshal JSON to temporary map[string]any: %w", err)
	}

	// Nested objects come back as map[string]any; re-marshal them so the
	// caller sees their raw JSON form instead of a lossy generic map.
	resultMap := make(map[string]any, len(tempMap))
	for key, v := range tempMap {
		if nestedMap, ok := v.(map[string]any); ok {
			nestedBytes, err := json.Marshal(nestedMap)
			if err != nil {
				return nil, fmt.Errorf("StructToMap: error re-marshaling nested map for key '%s': %w", key, err)
			}
			resultMap[key] = json.RawMessage(nestedBytes)
		} else {
			resultMap[key] = v
		}
	}
	return resultMap, nil
}

// MapToStruct is the inverse of StructToMap: it converts a map[string]any
// (possibly holding json.RawMessage values) into a new instance of the
// struct type T.
func MapToStruct[T any](input map[string]any) (T, error) {
	var zero T

	if input == nil {
		return zero, fmt.Errorf("MapToStruct: input map cannot be nil")
	}

	typ := reflect.TypeOf(zero)
	if typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return zero, fmt.Errorf("MapToStruct: generic type T must be a struct type (or pointer to struct)")
	}

	jsonBytes, err := json.Marshal(input)
	if err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to marshal input map to JSON: %w", err)
	}

	var result T
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return zero, fmt.Errorf("MapToStruct: failed to unmarshal JSON to target struct: %w", err)
	}
	return result, nil
}
