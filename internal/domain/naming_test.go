package domain

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Format
		wantErr bool
	}{
		{"empty is yaml", "", FormatYAML, false},
		{"yaml", "yaml", FormatYAML, false},
		{"yml", "YML", FormatYAML, false},
		{"json", " json ", FormatJSON, false},
		{"unknown", "toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	if got := FormatForPath("/x/checklist.JSON"); got != FormatJSON {
		t.Errorf("FormatForPath(.JSON) = %q", got)
	}
	if got := FormatForPath("/x/checklist.yaml"); got != FormatYAML {
		t.Errorf("FormatForPath(.yaml) = %q", got)
	}
	if got := FormatForPath("/x/checklist"); got != FormatYAML {
		t.Errorf("FormatForPath(no ext) = %q", got)
	}
}

func TestResolveStorePath(t *testing.T) {
	if got := ResolveStorePath("/p/.tick", "list.json"); got != "/p/.tick/list.json" {
		t.Errorf("ResolveStorePath(relative) = %q", got)
	}
	if got := ResolveStorePath("/p/.tick", "/abs/list.json"); got != "/abs/list.json" {
		t.Errorf("ResolveStorePath(absolute) = %q", got)
	}
}

func TestNotFoundError(t *testing.T) {
	if NotFoundError(Path{0, 1}) != ErrPhaseNotFound {
		t.Error("depth 2 should map to ErrPhaseNotFound")
	}
	if NotFoundError(Path{0, 1, 2, 3, 4}) != ErrTaskNotFound {
		t.Error("depth 5 should map to ErrTaskNotFound")
	}
	if !IsNotFound(ErrSubcategoryNotFound) || IsNotFound(ErrInvalidMove) {
		t.Error("IsNotFound mismatch")
	}
}
