package ingest

import (
	"reflect"
	"testing"

	"github.com/rkuiper/bouwvrij/internal/model"
)

func doc(id, title, rawType, date string) model.Document {
	return model.Document{ID: id, Title: title, RawType: rawType, EstablishedDate: date}
}

func TestFilter_KeepsAllowedTypes(t *testing.T) {
	f := NewFilter(model.DefaultVocabulary())

	docs := []model.Document{
		doc("a", "Bestemmingsplan Centrum", "bestemmingsplan", "2020-01-01"),
		doc("b", "Omgevingsplan Gemeente X", "omgevingsplan", "2021-01-01"),
		doc("c", "Structuurvisie 2030", "structuurvisie", "2022-01-01"),
		doc("d", "Beheersverordening Buitengebied", "beheersverordening", "2019-01-01"),
	}

	kept := f.Apply(docs)
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept documents, got %d", len(kept))
	}
	for _, d := range kept {
		if d.ID != "a" && d.ID != "b" {
			t.Errorf("unexpected document kept: %s", d.ID)
		}
	}
}

func TestFilter_ExcludesParapluplanByTitle(t *testing.T) {
	f := NewFilter(model.DefaultVocabulary())

	// Title exclusion wins even when the document type is allowed.
	docs := []model.Document{
		doc("a", "Parapluplan Parkeren", "bestemmingsplan", "2022-01-01"),
		doc("b", "PARAPLUPLAN Wonen", "omgevingsplan", "2022-01-01"),
		doc("c", "Herziening parapluplan geluid", "bestemmingsplan", "2022-01-01"),
		doc("d", "Bestemmingsplan Dorpskern", "bestemmingsplan", "2020-01-01"),
	}

	kept := f.Apply(docs)
	if len(kept) != 1 || kept[0].ID != "d" {
		t.Fatalf("expected only document d to survive, got %v", ids(kept))
	}
}

func TestFilter_SortsNewestFirst(t *testing.T) {
	f := NewFilter(model.DefaultVocabulary())

	docs := []model.Document{
		doc("old", "Bestemmingsplan A", "bestemmingsplan", "2015-03-01"),
		doc("newest", "Bestemmingsplan B", "bestemmingsplan", "2023-07-01T00:00:00Z"),
		doc("mid", "Omgevingsplan C", "omgevingsplan", "2019-12-31"),
	}

	kept := f.Apply(docs)
	want := []string{"newest", "mid", "old"}
	if !reflect.DeepEqual(ids(kept), want) {
		t.Errorf("expected order %v, got %v", want, ids(kept))
	}
}

func TestFilter_UndatedSortAfterDated(t *testing.T) {
	f := NewFilter(model.DefaultVocabulary())

	docs := []model.Document{
		doc("u1", "Bestemmingsplan X", "bestemmingsplan", ""),
		doc("dated", "Bestemmingsplan Y", "bestemmingsplan", "2010-01-01"),
		doc("u2", "Bestemmingsplan Z", "bestemmingsplan", "invalid-date"),
	}

	kept := f.Apply(docs)
	want := []string{"dated", "u1", "u2"}
	if !reflect.DeepEqual(ids(kept), want) {
		t.Errorf("expected dated first and undated in stable order, got %v", ids(kept))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	f := NewFilter(model.DefaultVocabulary())

	docs := []model.Document{
		doc("a", "Parapluplan Parkeren", "bestemmingsplan", "2022-01-01"),
		doc("b", "Bestemmingsplan Dorp", "bestemmingsplan", "2018-01-01"),
		doc("c", "Omgevingsplan Stad", "omgevingsplan", "2021-01-01"),
	}

	once := f.Apply(docs)
	twice := f.Apply(once)

	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("expected idempotent filtering, got %v then %v", ids(once), ids(twice))
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	f := NewFilter(model.DefaultVocabulary())

	if kept := f.Apply(nil); len(kept) != 0 {
		t.Errorf("expected empty output for nil input, got %d", len(kept))
	}
}

func ids(docs []model.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
