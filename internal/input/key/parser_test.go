package key

import (
	"errors"
	"testing"
)

func TestParseBinding(t *testing.T) {
	tests := []struct {
		spec string
		want Binding
	}{
		{"Mod+K", Binding{Key: "K", Mod: true}},
		{"ctrl+c", Binding{Key: "c", Mod: true}},
		{"Cmd+Shift+Z", Binding{Key: "Z", Mod: true, Shift: true}},
		{"Meta+/", Binding{Key: "/", Mod: true}},
		{"Tab", Binding{Key: "Tab"}},
		{"Shift+Tab", Binding{Key: "Tab", Shift: true}},
		{"Mod++", Binding{Key: "+", Mod: true}},
		{" Control + S ", Binding{Key: "S", Mod: true}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseBinding(tt.spec)
			if err != nil {
				t.Fatalf("ParseBinding(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseBinding(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseBindingErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+K", ErrInvalidSpec},
		{"Mod+ ", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := ParseBinding(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("ParseBinding(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestBindingTextRoundTrip(t *testing.T) {
	var b Binding
	if err := b.UnmarshalText([]byte("Ctrl+Shift+p")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	text, _ := b.MarshalText()
	if string(text) != "Mod+Shift+p" {
		t.Errorf("MarshalText() = %q, want %q", text, "Mod+Shift+p")
	}
}

func TestMustParseBindingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseBinding should panic on an invalid spec")
		}
	}()
	MustParseBinding("Bogus+K")
}
