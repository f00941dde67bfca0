/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package document

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FromAttributeValue converts a DynamoDB wire value into a Value. Wire kinds outside
// the union come back as Unsupported rather than failing the whole item.
func FromAttributeValue(av types.AttributeValue) Value {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return String(tv.Value)
	case *types.AttributeValueMemberN:
		return Number(tv.Value)
	case *types.AttributeValueMemberSS:
		return StringSet(append([]string{}, tv.Value...))
	case *types.AttributeValueMemberM:
		return Map(fromAttributeValueMap(tv.Value))
	case *types.AttributeValueMemberNULL:
		return Null{}
	case *types.AttributeValueMemberBOOL:
		return Unsupported{Type: "BOOL"}
	case *types.AttributeValueMemberL:
		return Unsupported{Type: "L"}
	case *types.AttributeValueMemberB:
		return Unsupported{Type: "B"}
	case *types.AttributeValueMemberBS:
		return Unsupported{Type: "BS"}
	case *types.AttributeValueMemberNS:
		return Unsupported{Type: "NS"}
	default:
		return Unsupported{Type: fmt.Sprintf("%T", av)}
	}
}

// FromAttributeValueMap converts a DynamoDB item into a Document.
func FromAttributeValueMap(item map[string]types.AttributeValue) Document {
	if item == nil {
		return nil
	}
	return Document(fromAttributeValueMap(item))
}

func fromAttributeValueMap(item map[string]types.AttributeValue) map[string]Value {
	out := make(map[string]Value, len(item))
	for k, v := range item {
		out[k] = FromAttributeValue(v)
	}
	return out
}

// ToAttributeValue converts a Value into its DynamoDB wire form.
func ToAttributeValue(v Value) (types.AttributeValue, error) {
	switch tv := v.(type) {
	case String:
		return &types.AttributeValueMemberS{Value: string(tv)}, nil
	case Number:
		if !tv.Valid() {
			return nil, fmt.Errorf("number %q %w", string(tv), ErrNotNumeric)
		}
		return &types.AttributeValueMemberN{Value: string(tv)}, nil
	case StringSet:
		if len(tv) == 0 {
			return nil, fmt.Errorf("string sets cannot be empty")
		}
		return &types.AttributeValueMemberSS{Value: []string(tv.Normalize())}, nil
	case Map:
		inner, err := toAttributeValueMap(tv)
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: inner}, nil
	case Null:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case Unsupported:
		return nil, fmt.Errorf("cannot write unsupported attribute type %s", tv.Type)
	case nil:
		return nil, fmt.Errorf("nil attribute value")
	default:
		return nil, fmt.Errorf("unknown attribute value %T", v)
	}
}

// ToAttributeValueMap converts a Document into a DynamoDB item.
func ToAttributeValueMap(d Document) (map[string]types.AttributeValue, error) {
	return toAttributeValueMap(d)
}

func toAttributeValueMap(m map[string]Value) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(m))
	for k, v := range m {
		av, err := ToAttributeValue(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}
