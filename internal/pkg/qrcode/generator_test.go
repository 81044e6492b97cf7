package qrcode

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerificationURL(t *testing.T) {
	g := NewGenerator("https://capacita.app", t.TempDir(), "")

	got := g.VerificationURL("ALU-2024-000042")
	want := "https://capacita.app/verificar/ALU-2024-000042"
	if got != want {
		t.Errorf("VerificationURL = %q, want %q", got, want)
	}
}

func TestGenerateWritesPNG(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator("https://capacita.app", dir, "")

	path, err := g.Generate("ALU-2024-000001")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	wantPath := filepath.Join(dir, "qrcode_ALU-2024-000001.png")
	if path != wantPath {
		t.Errorf("Generate path = %q, want %q", path, wantPath)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("generated QR file is empty")
	}
}

func TestGenerateReusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator("https://capacita.app", dir, "")

	cached := filepath.Join(dir, "qrcode_ALU-2024-000002.png")
	if err := os.WriteFile(cached, []byte("sentinel"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := g.Generate("ALU-2024-000002")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if path != cached {
		t.Errorf("Generate path = %q, want cached %q", path, cached)
	}

	content, err := os.ReadFile(cached)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "sentinel" {
		t.Error("cached QR file was overwritten")
	}
}

func TestGenerateCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "qrcodes")
	g := NewGenerator("https://capacita.app", dir, "")

	if _, err := g.Generate("ALU-2024-000003"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}
