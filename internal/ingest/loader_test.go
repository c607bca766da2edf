package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()

	content := `{
		"address": {"display_address": "Dorpsstraat 1, 1234 AB Ons Dorp", "municipality": "Ons Dorp"},
		"zoning_documents": [
			{"id": "doc-1", "title": "Bestemmingsplan Dorpskern", "text": "## Artikel 1 Begrippen\ntekst", "document_type": "bestemmingsplan", "established_date": "2020-01-01"}
		],
		"zoning_metadata": {"bestemmingsvlakken": ["Wonen - 1"], "maatvoeringen": [{"name": "maximum bouwhoogte (m)", "value": 3}]}
	}`
	if err := os.WriteFile(filepath.Join(dir, "plot.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir)
	file, err := loader.LoadFile("plot.json")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if file.Address.DisplayAddress != "Dorpsstraat 1, 1234 AB Ons Dorp" {
		t.Errorf("unexpected address: %s", file.Address.DisplayAddress)
	}
	if len(file.Documents) != 1 || file.Documents[0].ID != "doc-1" {
		t.Fatalf("unexpected documents: %+v", file.Documents)
	}
	if !reflect.DeepEqual(file.Metadata.Bestemmingsvlakken, []string{"Wonen - 1"}) {
		t.Errorf("unexpected bestemmingsvlakken: %v", file.Metadata.Bestemmingsvlakken)
	}
	if len(file.Metadata.Maatvoeringen) != 1 || file.Metadata.Maatvoeringen[0].Value != 3 {
		t.Errorf("unexpected maatvoeringen: %+v", file.Metadata.Maatvoeringen)
	}
}

func TestLoader_LoadFile_MissingAddress(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"zoning_documents": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir)
	if _, err := loader.LoadFile("bad.json"); err == nil {
		t.Error("expected error for plan file without address")
	}
}

func TestLoader_LoadFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir)
	if _, err := loader.LoadFile("broken.json"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoader_ListFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.json", "a.JSON", "notes.txt", "c.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir)
	names, err := loader.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	want := []string{"a.JSON", "b.json", "c.json"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}
