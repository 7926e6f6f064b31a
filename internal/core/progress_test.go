package core

import (
	"reflect"
	"testing"
)

func TestScaledProgress(t *testing.T) {
	var got []int
	callback := func(current, total int, message string) {
		if total != ProgressScale {
			t.Errorf("total = %d", total)
		}
		got = append(got, current)
	}

	scaled := scaledProgress(callback, 30, 70)
	scaled(0, 4, "")
	scaled(1, 4, "")
	scaled(4, 4, "")
	scaled(9, 4, "")
	scaled(0, 0, "")

	if expected := []int{30, 40, 70, 70, 30}; !reflect.DeepEqual(got, expected) {
		t.Errorf("получено %v, ожидалось %v", got, expected)
	}

	if scaledProgress(nil, 0, 30) != nil {
		t.Error("для nil callback ожидается nil")
	}
}

func TestProgressUpdatePercent(t *testing.T) {
	if p := (ProgressUpdate{Current: 1, Total: 4}).Percent(); p != 25 {
		t.Errorf("Percent() = %v", p)
	}
	if p := (ProgressUpdate{}).Percent(); p != 0 {
		t.Errorf("Percent() без total = %v", p)
	}
}
