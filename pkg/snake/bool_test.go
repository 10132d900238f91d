package snake

import "testing"

func TestParseBool(t *testing.T) {
	tests := map[string]struct {
		want    bool
		wantErr bool
	}{
		"on":    {want: true},
		"Yes":   {want: true},
		"1":     {want: true},
		" off ": {want: false},
		"No":    {want: false},
		"false": {want: false},
		"maybe": {wantErr: true},
		"":      {wantErr: true},
	}
	for in, tc := range tests {
		got, err := ParseBool(in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBool(%q) expected error", in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBool(%q) unexpected error: %v", in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBool(%q) = %t, want %t", in, got, tc.want)
		}
	}
}
