package fetch

import "testing"

func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec    string
		want    Target
		wantErr bool
	}{
		{spec: "serde", want: Target{Name: "serde"}},
		{spec: "serde@1.0.219", want: Target{Name: "serde", Version: "1.0.219"}},
		{spec: "serde::de::Deserialize", want: Target{Name: "serde", Filter: "de::Deserialize"}},
		{spec: "rustdoc-types::Crate", want: Target{Name: "rustdoc-types", Filter: "Crate"}},
		{spec: "tokio@1.38::sync::mpsc", want: Target{Name: "tokio", Version: "1.38", Filter: "sync::mpsc"}},
		// A hyphenated first path component is a crate name respelling.
		{spec: "mycrate::sub-module::Item", want: Target{Name: "mycrate", Filter: "sub_module::Item"}},
		{spec: "", wantErr: true},
		{spec: "serde::", wantErr: true},
		{spec: "::Deserialize", wantErr: true},
		{spec: "@1.0", wantErr: true},
		{spec: "serde@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTarget(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTarget(%q) = %+v, want error", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTarget(%q): %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseTarget(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestImportName(t *testing.T) {
	t.Parallel()

	if got := ImportName("rustdoc-types"); got != "rustdoc_types" {
		t.Errorf("ImportName = %q, want %q", got, "rustdoc_types")
	}
	if got := ImportName("serde"); got != "serde" {
		t.Errorf("ImportName = %q, want %q", got, "serde")
	}
}
