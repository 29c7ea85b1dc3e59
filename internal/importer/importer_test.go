package importer

import (
	"strings"
	"testing"
)

const sampleCSV = `id,name,name_en,price,category,emoji,origin,rating,unit
olive-oil-1L,زيت زيتون بكر,Extra virgin olive oil,9.50,oils,🫒,فلسطين,4.8,1L
zaatar-500g,زعتر بلدي,Wild thyme blend,6.5,spices,🌿,الأردن,4.6,500g
medjool-dates-1kg,تمر مجهول,Medjool dates,12,dates,🌴,فلسطين,4.9,1kg
`

func TestRun(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader(sampleCSV))
	products, err := imp.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}

	p := products[0]
	if p.ID != "olive-oil-1L" || p.PriceCents != 950 || p.Category != "oils" || p.Rating != 4.8 {
		t.Fatalf("unexpected first product: %+v", p)
	}
	if products[1].PriceCents != 650 {
		t.Fatalf("one decimal place: expected 650, got %d", products[1].PriceCents)
	}
	if products[2].PriceCents != 1200 {
		t.Fatalf("whole euros: expected 1200, got %d", products[2].PriceCents)
	}
}

func TestRunMissingColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("id,name\nx,y\n"))
	if _, err := imp.Run(); err == nil || !strings.Contains(err.Error(), `missing column "price"`) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestRunDuplicateID(t *testing.T) {
	csv := "id,name,price\na,one,1.00\na,two,2.00\n"
	imp := NewCSVImporter(strings.NewReader(csv))
	if _, err := imp.Run(); err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestRunEmptyID(t *testing.T) {
	csv := "id,name,price\n,one,1.00\n"
	imp := NewCSVImporter(strings.NewReader(csv))
	if _, err := imp.Run(); err == nil || !strings.Contains(err.Error(), "empty id") {
		t.Fatalf("expected empty id error, got %v", err)
	}
}

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"9.50", 950, false},
		{"12", 1200, false},
		{"0.05", 5, false},
		{"6.5", 650, false},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-1", 0, true},
		{"1.999", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := parsePriceCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parsePriceCents(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePriceCents(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parsePriceCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader(sampleCSV))
	products, err := imp.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var buf strings.Builder
	if err := WriteJSON(&buf, products); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"olive-oil-1L"`) {
		t.Fatalf("missing product id in output: %s", out)
	}
	if strings.Contains(out, `<`) {
		t.Fatal("html escaping should be disabled")
	}
}
