package version

import "testing"

func TestSatisfies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v, constraint string
		want          bool
		wantErr       bool
	}{
		{Version, "", true, false},
		{"1.2.0", ">= 1.1", true, false},
		{"1.0.5", ">= 1.1", false, false},
		{"2.0.0", "^1.0", false, false},
		{"v1.4.2", "~1.4", true, false},
		{"banana", ">= 1", false, true},
		{"1.0.0", "=> nonsense", false, true},
	}

	for _, tc := range tests {
		got, err := Satisfies(tc.v, tc.constraint)
		if (err != nil) != tc.wantErr {
			t.Errorf("Satisfies(%q, %q) error = %v, wantErr %v", tc.v, tc.constraint, err, tc.wantErr)
			continue
		}

		if got != tc.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", tc.v, tc.constraint, got, tc.want)
		}
	}
}
