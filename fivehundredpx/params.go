package fivehundredpx

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"reflect"

	"github.com/spf13/cast"
)

const (
	paramConsumerKey    = "consumer_key"
	paramConsumerSecret = "consumer_secret"
)

// Params holds request parameters. Values may be strings, numbers, bools,
// slices, arrays or nested maps; nil values are omitted.
type Params map[string]any

func (p Params) clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// merge returns a new Params with p and then overrides applied in order.
// Later keys win, so credentials passed last cannot be replaced by callers.
func (p Params) merge(overrides Params) Params {
	out := make(Params, len(p)+len(overrides))
	maps.Copy(out, p)
	maps.Copy(out, overrides)
	return out
}

// Values flattens the parameters into url.Values.
//
// Lists are written with indexed brackets (tags[0]=a&tags[1]=b), maps with
// named brackets (filter[camera]=x), and bools as 1 or 0.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for key, v := range p {
		addValue(values, key, v)
	}
	return values
}

// Encode returns the URL-encoded form of the parameters, sorted by key.
func (p Params) Encode() string {
	return p.Values().Encode()
}

func addValue(values url.Values, key string, v any) {
	switch val := v.(type) {
	case nil:
		return
	case string:
		values.Add(key, val)
		return
	case bool:
		if val {
			values.Add(key, "1")
		} else {
			values.Add(key, "0")
		}
		return
	case json.Number:
		values.Add(key, val.String())
		return
	case []byte:
		values.Add(key, string(val))
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			addValue(values, fmt.Sprintf("%s[%d]", key, i), rv.Index(i).Interface())
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			addValue(values, fmt.Sprintf("%s[%v]", key, iter.Key().Interface()), iter.Value().Interface())
		}
	case reflect.Pointer:
		if rv.IsNil() {
			return
		}
		addValue(values, key, rv.Elem().Interface())
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		values.Add(key, s)
	}
}
