package scraper

import (
	"context"
	"testing"
)

// go test -v --run TestBondLinks
func TestBondLinks(t *testing.T) {
	store := &memStore{formulas: []string{
		`=HYPERLINK("https://stablebonds.example/bonds/ugro/INE583D07570","UGRO Capital")`,
		"https://stablebonds.example/bonds/navi/INE342T07AB1",
		"just a label",
		"",
		`=SUM(A1:A2)`,
	}}

	urls, err := BondLinks(context.Background(), store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://stablebonds.example/bonds/ugro/INE583D07570",
		"https://stablebonds.example/bonds/navi/INE342T07AB1",
		"",
		"",
		"",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls, want %d (alignment with sheet rows)", len(urls), len(want))
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}
