package algo

import (
	"fmt"
	"strings"
)

// JSONMap map[string]interface{}, the shape viper and encoding/json decode
// nested documents into
type JSONMap map[string]interface{}

// JSONArray []interface{}
type JSONArray []interface{}

func lookupErr(key string) error {
	return fmt.Errorf("lookup failed, key:%s", key)
}

func asMap(v interface{}) (JSONMap, bool) {
	switch m := v.(type) {
	case JSONMap:
		return m, true
	case map[string]interface{}:
		return JSONMap(m), true
	case map[interface{}]interface{}:
		out := make(JSONMap, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func asArray(v interface{}) (JSONArray, bool) {
	switch a := v.(type) {
	case JSONArray:
		return a, true
	case []interface{}:
		return JSONArray(a), true
	case []float64:
		out := make(JSONArray, len(a))
		for i := range a {
			out[i] = a[i]
		}
		return out, true
	}
	return nil, false
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

/***************** JSONMap ******************/

// GetString value for key as string
func (c JSONMap) GetString(key string) (string, error) {
	ret, ok := c[key].(string)
	if ok {
		return ret, nil
	}
	return "", lookupErr(key)
}

// GetBool value for key as bool
func (c JSONMap) GetBool(key string) (bool, error) {
	ret, ok := c[key].(bool)
	if ok {
		return ret, nil
	}
	return false, lookupErr(key)
}

// GetInt value for key as int; whole floats are accepted
func (c JSONMap) GetInt(key string) (int, error) {
	f, ok := asFloat64(c[key])
	if ok && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, lookupErr(key)
}

// GetFloat64 value for key as float64; any numeric type is accepted
func (c JSONMap) GetFloat64(key string) (float64, error) {
	ret, ok := asFloat64(c[key])
	if ok {
		return ret, nil
	}
	return 0, lookupErr(key)
}

// GetMap value for key as JSONMap
func (c JSONMap) GetMap(key string) (JSONMap, error) {
	ret, ok := asMap(c[key])
	if ok {
		return ret, nil
	}
	return nil, lookupErr(key)
}

// GetArray value for key as JSONArray
func (c JSONMap) GetArray(key string) (JSONArray, error) {
	ret, ok := asArray(c[key])
	if ok {
		return ret, nil
	}
	return nil, lookupErr(key)
}

// Float64Or value for key, or def when missing or not numeric
func (c JSONMap) Float64Or(key string, def float64) float64 {
	if v, err := c.GetFloat64(key); err == nil {
		return v
	}
	return def
}

// BoolOr value for key, or def when missing or not a bool
func (c JSONMap) BoolOr(key string, def bool) bool {
	if v, err := c.GetBool(key); err == nil {
		return v
	}
	return def
}

// StringOr value for key, or def when missing or not a string
func (c JSONMap) StringOr(key string, def string) string {
	if v, err := c.GetString(key); err == nil {
		return v
	}
	return def
}

// GetFloat64ByPath resolves a dotted path such as "hop.maxGap"
func (c JSONMap) GetFloat64ByPath(path string) (float64, error) {
	options := strings.Split(path, ".")
	var result float64
	middle := c
	var err error
	for i, length := 0, len(options); i < length; i++ {
		if i == length-1 {
			result, err = middle.GetFloat64(options[i])
		} else {
			middle, err = middle.GetMap(options[i])
		}
		if err != nil {
			return 0, err
		}
	}
	return result, nil
}

/***************** JSONArray ******************/

// GetString element index as string
func (c JSONArray) GetString(index int) (string, error) {
	if index < 0 || index >= len(c) {
		return "", fmt.Errorf("lookup failed, index:%d", index)
	}
	ret, ok := c[index].(string)
	if ok {
		return ret, nil
	}
	return "", fmt.Errorf("lookup failed, index:%d", index)
}

// GetFloat64 element index as float64
func (c JSONArray) GetFloat64(index int) (float64, error) {
	if index < 0 || index >= len(c) {
		return 0, fmt.Errorf("lookup failed, index:%d", index)
	}
	ret, ok := asFloat64(c[index])
	if ok {
		return ret, nil
	}
	return 0, fmt.Errorf("lookup failed, index:%d", index)
}

// GetMap element index as JSONMap
func (c JSONArray) GetMap(index int) (JSONMap, error) {
	if index < 0 || index >= len(c) {
		return nil, fmt.Errorf("lookup failed, index:%d", index)
	}
	ret, ok := asMap(c[index])
	if ok {
		return ret, nil
	}
	return nil, fmt.Errorf("lookup failed, index:%d", index)
}

// Floats converts every element to float64
func (c JSONArray) Floats() ([]float64, error) {
	out := make([]float64, len(c))
	for i := range c {
		f, err := c.GetFloat64(i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
