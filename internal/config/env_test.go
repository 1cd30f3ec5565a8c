package config

import (
	"reflect"
	"testing"
)

func TestGetEnvSlice(t *testing.T) {
	def := []string{"http://localhost:3000"}

	cases := []struct {
		name  string
		value string
		want  []string
	}{
		{"unset", "", def},
		{"only separators", " , ,", def},
		{"trimmed entries", " https://a.example , ,https://b.example", []string{"https://a.example", "https://b.example"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CORS_ALLOWED_ORIGINS", tc.value)
			if got := getEnvSlice("CORS_ALLOWED_ORIGINS", def); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("getEnvSlice(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
