package models

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		input string
		typ   CommandType
		args  []string
	}{
		{"/add P1 Widget 10 2.5", CommandAdd, []string{"P1", "Widget", "10", "2.5"}},
		{"  SELL  P1 3 ", CommandSell, []string{"P1", "3"}},
		{"/List", CommandList, nil},
		{"/stock AbC-1", CommandStock, []string{"AbC-1"}},
		{"", CommandUnknown, nil},
		{"   ", CommandUnknown, nil},
		{"/restock 12", CommandUnknown, []string{"12"}},
	}
	for _, tc := range cases {
		cmd := ParseCommand(tc.input)
		if cmd.Type != tc.typ {
			t.Fatalf("ParseCommand(%q).Type = %q, want %q", tc.input, cmd.Type, tc.typ)
		}
		if !reflect.DeepEqual(cmd.Args, tc.args) {
			t.Fatalf("ParseCommand(%q).Args = %v, want %v", tc.input, cmd.Args, tc.args)
		}
		if cmd.Raw != tc.input {
			t.Fatalf("raw text not preserved: %q", cmd.Raw)
		}
	}
}
