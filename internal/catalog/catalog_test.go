package catalog

import "testing"

func TestDefault_WholesaleIsSeventyPercent(t *testing.T) {
	c := Default()

	for _, name := range c.Products() {
		retail, ok := c.RetailPrice(name)
		if !ok {
			t.Fatalf("retail price missing for %s", name)
		}
		wholesale, ok := c.WholesalePrice(name)
		if !ok {
			t.Fatalf("wholesale price missing for %s", name)
		}
		if want := retail * 70 / 100; wholesale != want {
			t.Errorf("%s: expected wholesale %d, got %d", name, want, wholesale)
		}
	}
}

func TestDefault_KnownProducts(t *testing.T) {
	c := Default()

	cases := map[string]int64{
		"candy":        10000,
		"snacks":       15000,
		"chocolates":   20000,
		"biscuits":     25000,
		"cold_drinks":  5000,
		"chewing_gums": 3000,
		"juices":       12000,
		"jelly":        8000,
	}
	for name, want := range cases {
		got, ok := c.RetailPrice(name)
		if !ok {
			t.Errorf("%s must be in the catalog", name)
			continue
		}
		if got != want {
			t.Errorf("%s: expected %d, got %d", name, want, got)
		}
	}

	if _, ok := c.RetailPrice("cigarettes"); ok {
		t.Errorf("unknown product must not resolve")
	}
}

func TestNew_CopiesMaps(t *testing.T) {
	retail := map[string]int64{"candy": 100}
	c := New(retail, map[string]int64{"candy": 70})

	retail["candy"] = 999
	if p, _ := c.RetailPrice("candy"); p != 100 {
		t.Errorf("catalog must not share the caller's map, got %d", p)
	}
}
