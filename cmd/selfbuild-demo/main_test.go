package main

import "testing"

func TestGreeting(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "Hello, world!"},
		{[]string{"Ada"}, "Hello, Ada!"},
		{[]string{"Ada", "big world"}, "Hello, Ada and big world!"},
	}
	for _, tt := range tests {
		if got := greeting(tt.names); got != tt.want {
			t.Errorf("greeting(%q) = %q, want %q", tt.names, got, tt.want)
		}
	}
}
