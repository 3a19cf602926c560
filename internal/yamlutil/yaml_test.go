package yamlutil_test

// Notes:
// - Parse errors from the YAML library are checked by prefix only; their
//   wording belongs to goccy/go-yaml.
// - TestInputSizeLimit mutates MaxInputSize and does not run in parallel.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2note/internal/yamlutil"
)

type testSettings struct {
	RawHTML string   `yaml:"rawHTML"`
	Workers int      `yaml:"workers"`
	Disable []string `yaml:"disable"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("rawHTML: sanitize\nworkers: 4\ndisable: [no-table]"),
			dest: &testSettings{},
			check: func(t *testing.T, v any) {
				s := v.(*testSettings)
				if s.RawHTML != "sanitize" {
					t.Errorf("RawHTML = %q, want %q", s.RawHTML, "sanitize")
				}
				if s.Workers != 4 {
					t.Errorf("Workers = %d, want 4", s.Workers)
				}
				if len(s.Disable) != 1 || s.Disable[0] != "no-table" {
					t.Errorf("Disable = %v, want [no-table]", s.Disable)
				}
			},
		},
		{
			name: "unknown fields ignored",
			data: []byte("workers: 2\nextra: true"),
			dest: &testSettings{},
			check: func(t *testing.T, v any) {
				if v.(*testSettings).Workers != 2 {
					t.Errorf("Workers = %d, want 2", v.(*testSettings).Workers)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testSettings{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("workers: 1"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("disable: [unclosed"),
			dest:    &testSettings{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			assertErr(t, err, tt.wantErr)
			if err == nil && tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"known fields only", []byte("rawHTML: keep\nworkers: 1"), nil},
		{"unknown field", []byte("workers: 1\nworkrs: 2"), errors.New("yamlutil:")},
		{"empty data", []byte{}, yamlutil.ErrNilData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, &testSettings{})
			assertErr(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeMapping - Front matter style documents
// ---------------------------------------------------------------------------

func TestDecodeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantLen int
		wantErr error
	}{
		{"mapping", []byte("title: Hello\ntags: [go]"), 2, nil},
		{"comment only", []byte("# nothing here\n"), 0, nil},
		{"explicit null", []byte("null"), 0, nil},
		{"sequence", []byte("- a\n- b"), 0, yamlutil.ErrNotMapping},
		{"scalar", []byte("just text"), 0, yamlutil.ErrNotMapping},
		{"empty", nil, 0, yamlutil.ErrNilData},
		{"syntax error", []byte("title: [x"), 0, errors.New("yamlutil:")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := yamlutil.DecodeMapping(tt.data)
			assertErr(t, err, tt.wantErr)
			if err == nil && len(got) != tt.wantLen {
				t.Errorf("len(DecodeMapping()) = %d, want %d (%v)", len(got), tt.wantLen, got)
			}
		})
	}
}

func TestDecodeMapping_Values(t *testing.T) {
	t.Parallel()

	got, err := yamlutil.DecodeMapping([]byte("title: 日本語\ndraft: true"))
	if err != nil {
		t.Fatalf("DecodeMapping() error = %v", err)
	}
	if got["title"] != "日本語" {
		t.Errorf("title = %v, want 日本語", got["title"])
	}
	if got["draft"] != true {
		t.Errorf("draft = %v, want true", got["draft"])
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := make([]byte, 100)
	copy(data, "workers: 1")

	err := yamlutil.Unmarshal(data, &testSettings{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
		t.Errorf("error should contain both sizes, got: %s", msg)
	}

	if _, err := yamlutil.DecodeMapping(data); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("DecodeMapping() error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// assertErr matches by errors.Is, falling back to a message prefix check.
func assertErr(t *testing.T, err, want error) {
	t.Helper()
	if want == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if errors.Is(err, want) {
		return
	}
	if !strings.Contains(err.Error(), want.Error()) {
		t.Fatalf("error = %q, want containing %q", err, want)
	}
}
