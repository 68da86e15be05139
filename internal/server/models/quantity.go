package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Quantity is the amount of food on offer. It is stored as text, but clients
// and older documents send plain numbers too, so both are accepted on input.
type Quantity string

// Int parses q for ranking. Decimal text is truncated toward zero, numbers
// outside the int range saturate at math.MaxInt or math.MinInt, and anything
// that is not a number ranks as 0.
func (q Quantity) Int() int {
	s := strings.TrimSpace(string(q))
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		*q = Quantity(value)
	case float64:
		*q = Quantity(strconv.FormatFloat(value, 'f', -1, 64))
	case nil:
		*q = ""
	default:
		return fmt.Errorf("invalid quantity %s", string(b))
	}
	return nil
}

func (q Quantity) MarshalBSONValue() (byte, []byte, error) {
	typ, data, err := bson.MarshalValue(string(q))
	return byte(typ), data, err
}

func (q *Quantity) UnmarshalBSONValue(typ byte, data []byte) error {
	raw := bson.RawValue{Type: bson.Type(typ), Value: data}

	switch raw.Type {
	case bson.TypeString:
		*q = Quantity(raw.StringValue())
	case bson.TypeInt32:
		*q = Quantity(strconv.FormatInt(int64(raw.Int32()), 10))
	case bson.TypeInt64:
		*q = Quantity(strconv.FormatInt(raw.Int64(), 10))
	case bson.TypeDouble:
		*q = Quantity(strconv.FormatFloat(raw.Double(), 'f', -1, 64))
	case bson.TypeNull, bson.TypeUndefined:
		*q = ""
	default:
		return fmt.Errorf("invalid quantity bson type %s", raw.Type)
	}
	return nil
}
