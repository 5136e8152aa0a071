package algo

import (
	"testing"
)

func Test_JsonMap(t *testing.T) {
	data := JSONMap{
		"arrayData": []interface{}{
			"abc",
			map[string]interface{}{
				"number1": 1,
			},
		},
		"number2": 2,
		"string1": "hao",
		"flag":    true,
		"hop": map[interface{}]interface{}{
			"maxGap": 0.6,
			"count":  3,
		},
		"pos": []interface{}{1, 2.5, -3},
	}

	if string1, err := data.GetString("string1"); err != nil || string1 != "hao" {
		t.Errorf("should be hao, but is %v (%v)", string1, err)
	}

	if number2, err := data.GetInt("number2"); err != nil || number2 != 2 {
		t.Errorf("should be 2, but is %v (%v)", number2, err)
	}

	if f, err := data.GetFloat64("number2"); err != nil || f != 2 {
		t.Errorf("int should read as float 2, but is %v (%v)", f, err)
	}

	if gap, err := data.GetFloat64ByPath("hop.maxGap"); err != nil || gap != 0.6 {
		t.Errorf("should be 0.6, but is %v (%v)", gap, err)
	}

	if _, err := data.GetFloat64ByPath("hop.missing"); err == nil {
		t.Errorf("missing path should fail")
	}

	arrayData, err := data.GetArray("arrayData")
	if err != nil {
		t.Fatalf("should be array, but is err: %v", err)
	}
	if s, err := arrayData.GetString(0); err != nil || s != "abc" {
		t.Errorf("should be abc, but is %v (%v)", s, err)
	}
	if m, err := arrayData.GetMap(1); err != nil || m.Float64Or("number1", 0) != 1 {
		t.Errorf("should be map with number1, but is %v (%v)", m, err)
	}
	if _, err := arrayData.GetString(5); err == nil {
		t.Errorf("out of range index should fail")
	}

	pos, err := data.GetArray("pos")
	if err != nil {
		t.Fatalf("should be array, but is err: %v", err)
	}
	floats, err := pos.Floats()
	if err != nil || len(floats) != 3 || floats[1] != 2.5 {
		t.Errorf("should be [1 2.5 -3], but is %v (%v)", floats, err)
	}

	if !data.BoolOr("flag", false) || data.BoolOr("missing", true) != true {
		t.Errorf("BoolOr mismatch")
	}
	if data.StringOr("missing", "def") != "def" {
		t.Errorf("StringOr mismatch")
	}
}
