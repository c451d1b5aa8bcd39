package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr error
	}{
		{name: "plain integer", input: "100", want: 10000},
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "one decimal", input: "0.1", want: 10},
		{name: "negative", input: "-5.50", want: -550},
		{name: "zero", input: "0", want: 0},
		{name: "sub-cent precision rejected", input: "1.005", wantErr: ErrTooPrecise},
		{name: "garbage rejected", input: "twelve", wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	payload := struct {
		Amount Amount `json:"amount"`
	}{Amount: 1234}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(data) != `{"amount":"12.34"}` {
		t.Errorf("marshal = %s, want string-encoded fixed point", data)
	}
}

func TestUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	for _, input := range []string{`"33.10"`, `33.10`, `33.1`} {
		var a Amount
		if err := json.Unmarshal([]byte(input), &a); err != nil {
			t.Fatalf("unmarshal %s returned error: %v", input, err)
		}
		if a != 3310 {
			t.Errorf("unmarshal %s = %d, want 3310", input, a)
		}
	}
}

func TestString(t *testing.T) {
	if got := Amount(5).String(); got != "0.05" {
		t.Errorf("Amount(5).String() = %q, want %q", got, "0.05")
	}
	if got := Amount(-20000).String(); got != "-200.00" {
		t.Errorf("Amount(-20000).String() = %q, want %q", got, "-200.00")
	}
}
