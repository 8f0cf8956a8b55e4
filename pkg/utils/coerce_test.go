package utils

import (
	"encoding/json"
	"testing"
)

func TestSafeFloat(t *testing.T) {
	cases := []struct {
		name     string
		value    interface{}
		fallback float64
		want     float64
	}{
		{"float64", 3.5, 0, 3.5},
		{"int", 7, 0, 7},
		{"numeric string", "12.25", 0, 12.25},
		{"padded string", " 4.5 ", 0, 4.5},
		{"junk string", "abc", 0, 0},
		{"junk string custom fallback", "abc", 1, 1},
		{"nil", nil, 2, 2},
		{"bool true", true, 0, 1},
		{"bool false", false, 5, 0},
		{"json number", json.Number("9.75"), 0, 9.75},
		{"object", map[string]interface{}{}, 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeFloat(tc.value, tc.fallback); got != tc.want {
				t.Fatalf("SafeFloat(%v, %v) = %v, want %v", tc.value, tc.fallback, got, tc.want)
			}
		})
	}
}

func TestSafeInt(t *testing.T) {
	cases := []struct {
		name     string
		value    interface{}
		fallback int
		want     int
	}{
		{"int", 42, 0, 42},
		{"float truncates", 3.9, 0, 3},
		{"integer string", "7", 0, 7},
		{"fractional string rejected", "7.5", 0, 0},
		{"junk string", "abc", 9, 9},
		{"nil", nil, 4, 4},
		{"bool true", true, 0, 1},
		{"json number", json.Number("11"), 0, 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeInt(tc.value, tc.fallback); got != tc.want {
				t.Fatalf("SafeInt(%v, %v) = %v, want %v", tc.value, tc.fallback, got, tc.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	truthy := []interface{}{true, 1.0, "x", []interface{}{1}, map[string]interface{}{"k": 1}}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("expected %v (%T) to be truthy", v, v)
		}
	}

	falsy := []interface{}{nil, false, 0.0, "", []interface{}{}, map[string]interface{}{}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("expected %v (%T) to be falsy", v, v)
		}
	}
}
