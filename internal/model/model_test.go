package model

import (
	"errors"
	"testing"
)

func TestRunID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		runID   RunID
		wantErr bool
	}{
		{
			name:    "valid UUIDv7",
			runID:   RunID("01890c24-905b-7122-b170-b60814e6ee06"),
			wantErr: false,
		},
		{
			name:    "empty string",
			runID:   RunID(""),
			wantErr: true,
		},
		{
			name:    "invalid UUID format",
			runID:   RunID("not-a-uuid"),
			wantErr: true,
		},
		{
			name:    "UUIDv4 rejected",
			runID:   RunID("550e8400-e29b-41d4-a716-446655440000"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.runID.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRunID(t *testing.T) {
	id, err := NewRunID()
	if err != nil {
		t.Fatalf("NewRunID() error = %v", err)
	}
	if err := id.Validate(); err != nil {
		t.Fatalf("generated run-id is invalid: %v", err)
	}
}

func TestScheme_Strip(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"file:/tmp/a.csv", "/tmp/a.csv", true},
		{"file:/tmp/file:b.csv", "/tmp/file:b.csv", true},
		{"file:", "", true},
		{"hdfs:/x/y", "hdfs:/x/y", false},
		{" file:/tmp/a", " file:/tmp/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := SchemeFile.Strip(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Strip() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	scheme, rest, err := ParseScheme("hdfs:/data/2023/06/15/a.log")
	if err != nil {
		t.Fatalf("ParseScheme() error = %v", err)
	}
	if scheme != SchemeHDFS {
		t.Errorf("scheme = %s, want %s", scheme, SchemeHDFS)
	}
	if rest != "/data/2023/06/15/a.log" {
		t.Errorf("rest = %s", rest)
	}

	for _, bad := range []string{"/data/a.log", "", "1abc:/x", ":/x"} {
		if _, _, err := ParseScheme(bad); !errors.Is(err, ErrNoScheme) {
			t.Errorf("ParseScheme(%q) error = %v, want ErrNoScheme", bad, err)
		}
	}
}
