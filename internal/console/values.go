package console

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type kind int

const (
	kindString kind = iota
	kindInt
	kindFloat
)

// attributeKinds types the numeric attributes that may be set before any
// record carries them.
var attributeKinds = map[string]kind{
	"number_rooms":     kindInt,
	"number_bathrooms": kindInt,
	"max_guest":        kindInt,
	"price_by_night":   kindInt,
	"latitude":         kindFloat,
	"longitude":        kindFloat,
}

// parseValue converts the raw console argument for attribute name.
// An existing value keeps its type; otherwise the attribute table decides,
// falling back to string.
func parseValue(name, raw string, current any, exists bool) (any, error) {
	if exists {
		switch current.(type) {
		case string:
			return raw, nil
		case int, int64:
			return strconv.Atoi(raw)
		case float64:
			return strconv.ParseFloat(raw, 64)
		case json.Number:
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				return nil, err
			}
			return json.Number(raw), nil
		case bool:
			return strconv.ParseBool(raw)
		}
	}

	switch attributeKinds[name] {
	case kindInt:
		return strconv.Atoi(raw)
	case kindFloat:
		return strconv.ParseFloat(raw, 64)
	case kindString:
		return raw, nil
	}
	return nil, fmt.Errorf("no conversion for %s", name)
}
