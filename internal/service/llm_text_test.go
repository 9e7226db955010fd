package service

import "testing"

func TestCleanLLMJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain json untouched", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "uppercase fence", in: "```JSON\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bom stripped", in: "\uFEFF{\"a\": 1}", want: `{"a": 1}`},
		{name: "surrounding whitespace", in: "  \n {\"a\": 1} \n ", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanLLMJSONResponse(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractFirstJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no object", in: "sin json aca", want: ""},
		{name: "bare object", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "text around", in: `Aqui va: {"a": 1} y mas texto`, want: `{"a": 1}`},
		{name: "nested objects", in: `{"a": {"b": 2}} {"c": 3}`, want: `{"a": {"b": 2}}`},
		{name: "braces inside string", in: `{"a": "tiene { y } adentro"}`, want: `{"a": "tiene { y } adentro"}`},
		{name: "escaped quote in string", in: `{"a": "dijo \"hola\""}`, want: `{"a": "dijo \"hola\""}`},
		{name: "unbalanced", in: `{"a": {"b": 2}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractFirstJSONObject(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
