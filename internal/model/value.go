package model

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Member - пара ключ/значение объекта, порядок членов сохраняется
type Member struct {
	Key   string
	Value Value
}

// Value - JSON-подобное значение произвольной вложенности.
// Нулевое значение - null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // строка или исходная запись числа (float, decimal из float)
	float   float64
	dec     decimal.Decimal
	list    []Value
	members []Member
}

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

func Int(n int64) Value {
	return Value{kind: KindInt, text: strconv.FormatInt(n, 10)}
}

func Float(f float64) Value {
	return Value{kind: KindFloat, float: f}
}

func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Object собирает объект из членов; при повторе ключа побеждает последнее значение.
func Object(members ...Member) Value {
	obj := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		obj.set(m.Key, m.Value)
	}
	return obj
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

func (v Value) AsFloat() (float64, bool) {
	return v.float, v.kind == KindFloat
}

func (v Value) AsDecimal() (decimal.Decimal, bool) {
	return v.dec, v.kind == KindDecimal
}

// NumberText возвращает десятичную запись числа (int, float или decimal).
func (v Value) NumberText() (string, bool) {
	switch v.kind {
	case KindInt:
		return v.text, true
	case KindFloat:
		if v.text != "" {
			return v.text, true
		}
		if !isFinite(v.float) {
			return "", false
		}
		return strconv.FormatFloat(v.float, 'g', -1, 64), true
	case KindDecimal:
		if v.text != "" {
			return v.text, true
		}
		return v.dec.String(), true
	}
	return "", false
}

func (v Value) Items() []Value {
	return v.list
}

func (v Value) Members() []Member {
	return v.members
}

func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.members)
	}
	return 0
}

func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// With возвращает копию объекта с установленным ключом.
// Существующий ключ сохраняет свою позицию.
func (v Value) With(key string, val Value) Value {
	if v.kind != KindObject {
		return v
	}
	out := Value{kind: KindObject, members: make([]Member, len(v.members), len(v.members)+1)}
	copy(out.members, v.members)
	out.set(key, val)
	return out
}

func (v *Value) set(key string, val Value) {
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Equal сравнивает значения по смыслу: числа decimal сравниваются по величине.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == o.boolean
	case KindInt, KindString:
		return v.text == o.text
	case KindFloat:
		return v.float == o.float
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for _, m := range v.members {
			other, ok := o.Get(m.Key)
			if !ok || !m.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// Transform обходит значение снизу вверх и применяет fn к каждому узлу,
// включая списки и объекты. Исходное значение не изменяется.
func Transform(v Value, fn func(Value) Value) Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = Transform(item, fn)
		}
		return fn(Value{kind: KindList, list: items})
	case KindObject:
		members := make([]Member, len(v.members))
		for i, m := range v.members {
			members[i] = Member{Key: m.Key, Value: Transform(m.Value, fn)}
		}
		return fn(Value{kind: KindObject, members: members})
	}
	return fn(v)
}

// FloatsToDecimal заменяет все конечные float на decimal.
// Если у числа есть исходная запись, decimal строится из нее и запись сохраняется
// (1.0 остается 1.0, 1e20 остается 1e20), иначе берется кратчайшая запись float.
func FloatsToDecimal(v Value) Value {
	return Transform(v, func(v Value) Value {
		if v.kind != KindFloat || !isFinite(v.float) {
			return v
		}
		if v.text != "" {
			if d, err := decimal.NewFromString(v.text); err == nil {
				return Value{kind: KindDecimal, dec: d, text: v.text}
			}
		}
		return Decimal(decimal.NewFromFloat(v.float))
	})
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
