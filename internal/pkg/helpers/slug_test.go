package helpers

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "Maria Silva", "maria-silva"},
		{"accented name", "João Conceição", "joao-conceicao"},
		{"mixed punctuation", "Ana-Clara d'Ávila Jr.", "ana-clara-d-avila-jr"},
		{"collapses separators", "A   B -- C", "a-b-c"},
		{"trailing punctuation", "Pedro!!!", "pedro"},
		{"leading punctuation", "---Lia", "lia"},
		{"digits kept", "Curso NR-10 2024", "curso-nr-10-2024"},
		{"empty", "", ""},
		{"only punctuation", "!?.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
