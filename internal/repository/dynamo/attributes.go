package dynamo

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ibeloyar/orderfuncs/internal/model"
)

var ErrFloatValue = errors.New("float value must be converted to decimal before writing")

// MarshalItem переводит запись заказа в item DynamoDB
func MarshalItem(record model.OrderRecord) (map[string]types.AttributeValue, error) {
	if record.Kind() != model.KindObject {
		return nil, fmt.Errorf("%w: got %s", model.ErrNotOrderRecord, record.Kind())
	}

	item := make(map[string]types.AttributeValue, record.Len())
	for _, m := range record.Members() {
		av, err := marshalValue(m.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", m.Key, err)
		}
		item[m.Key] = av
	}

	return item, nil
}

func marshalValue(v model.Value) (types.AttributeValue, error) {
	switch v.Kind() {
	case model.KindNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case model.KindBool:
		b, _ := v.AsBool()
		return &types.AttributeValueMemberBOOL{Value: b}, nil
	case model.KindInt, model.KindDecimal:
		n, _ := v.NumberText()
		return &types.AttributeValueMemberN{Value: n}, nil
	case model.KindFloat:
		return nil, ErrFloatValue
	case model.KindString:
		s, _ := v.AsString()
		return &types.AttributeValueMemberS{Value: s}, nil
	case model.KindList:
		list := make([]types.AttributeValue, 0, v.Len())
		for i, item := range v.Items() {
			av, err := marshalValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list = append(list, av)
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	case model.KindObject:
		m := make(map[string]types.AttributeValue, v.Len())
		for _, member := range v.Members() {
			av, err := marshalValue(member.Value)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", member.Key, err)
			}
			m[member.Key] = av
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	}

	return nil, fmt.Errorf("unsupported value kind %s", v.Kind())
}
