package models

import "testing"

func TestRenderPhrase(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		course  string
		student string
		want    string
	}{
		{
			name:    "both placeholders",
			phrase:  "Certificamos que {aluno} concluiu o curso de {curso}.",
			course:  "Eletricista Predial",
			student: "Maria da Silva",
			want:    "Certificamos que Maria da Silva concluiu o curso de Eletricista Predial.",
		},
		{
			name:    "repeated placeholder",
			phrase:  "{curso}: {aluno} finalizou {curso}.",
			course:  "Solda MIG",
			student: "Pedro",
			want:    "Solda MIG: Pedro finalizou Solda MIG.",
		},
		{
			name:    "no placeholders",
			phrase:  "Concluiu o curso com aproveitamento.",
			course:  "Solda MIG",
			student: "Pedro",
			want:    "Concluiu o curso com aproveitamento.",
		},
		{
			name:    "empty phrase falls back to default",
			phrase:  "",
			course:  "Solda MIG",
			student: "Pedro",
			want:    "concluiu com aproveitamento o curso de Solda MIG.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{Name: tt.course, CertificatePhrase: tt.phrase}
			if got := c.RenderPhrase(tt.student); got != tt.want {
				t.Errorf("RenderPhrase = %q, want %q", got, tt.want)
			}
		})
	}
}
