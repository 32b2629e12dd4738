package bump

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input  string
		want   Kind
		wantOK bool
	}{
		{"major", Major, true},
		{"MINOR", Minor, true},
		{"  Patch\n", Patch, true},
		{"", "", false},
		{"ignore", "", false},
		{"prerelease", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseKind(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	for _, k := range []Kind{"", "Major", " patch", "mayor"} {
		if k.Valid() {
			t.Errorf("%q should not be valid", k)
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"1.2.3", Version{1, 2, 3}, false},
		{"0.1.0", Version{0, 1, 0}, false},
		{"10.20.30", Version{10, 20, 30}, false},
		{"01.2.3", Version{}, true},
		{"1.02.3", Version{}, true},
		{"1.2", Version{}, true},
		{"1.2.3.4", Version{}, true},
		{"v1.2.3", Version{}, true},
		{"1.2.3-rc1", Version{}, true},
		{"1.2.3+build", Version{}, true},
		{"a.b.c", Version{}, true},
		{"-1.2.3", Version{}, true},
		{"1..3", Version{}, true},
		{"1.2.3 ", Version{}, true},
		{"99999999999999999999.0.0", Version{}, true},
		{"", Version{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("error %v should wrap ErrInvalidVersion", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		version string
		kind    Kind
		want    string
	}{
		{"1.2.3", Patch, "1.2.4"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Major, "2.0.0"},
		{"9.9.9", Patch, "9.9.10"},
		{"0.1.0", Minor, "0.2.0"},
		{"0.0.0", Major, "1.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.version+"/"+string(tt.kind), func(t *testing.T) {
			got, err := Apply(tt.version, tt.kind)
			if err != nil {
				t.Fatalf("Apply(%q, %q) returned error: %v", tt.version, tt.kind, err)
			}
			if got != tt.want {
				t.Errorf("Apply(%q, %q) = %q, want %q", tt.version, tt.kind, got, tt.want)
			}
		})
	}
}

func TestApply_UnknownKindFails(t *testing.T) {
	// Anything but major/minor/patch must fail instead of falling back to major.
	for _, kind := range []Kind{"", "ignore", "Major", "premajor"} {
		_, err := Apply("1.2.3", kind)
		if !errors.Is(err, ErrUnknownKind) {
			t.Errorf("Apply(1.2.3, %q) error = %v, want ErrUnknownKind", kind, err)
		}
	}
}

func TestApply_InvalidVersion(t *testing.T) {
	if _, err := Apply("1.2", Patch); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}
