package catalog

import "sort"

// Catalog — закрытый прайс-лист. Два прейскуранта: розничный (для
// shopkeeper) и оптовый (расчёты с производителем). Строится один раз на
// старте процесса и дальше только читается.
type Catalog struct {
	retail    map[string]int64
	wholesale map[string]int64
}

func New(retail, wholesale map[string]int64) *Catalog {
	c := &Catalog{
		retail:    make(map[string]int64, len(retail)),
		wholesale: make(map[string]int64, len(wholesale)),
	}
	for name, price := range retail {
		c.retail[name] = price
	}
	for name, price := range wholesale {
		c.wholesale[name] = price
	}
	return c
}

// Default возвращает каталог дистрибьютора: розница — фиксированные цены,
// опт — 70% от розницы.
func Default() *Catalog {
	retail := map[string]int64{
		"candy":        10000,
		"snacks":       15000,
		"chocolates":   20000,
		"biscuits":     25000,
		"cold_drinks":  5000,
		"chewing_gums": 3000,
		"juices":       12000,
		"jelly":        8000,
	}
	wholesale := make(map[string]int64, len(retail))
	for name, price := range retail {
		wholesale[name] = price * 70 / 100
	}
	return New(retail, wholesale)
}

// RetailPrice — розничная цена за единицу в копейках; ok=false для
// неизвестного товара.
func (c *Catalog) RetailPrice(product string) (int64, bool) {
	p, ok := c.retail[product]
	return p, ok
}

// WholesalePrice — оптовая цена за единицу в копейках.
func (c *Catalog) WholesalePrice(product string) (int64, bool) {
	p, ok := c.wholesale[product]
	return p, ok
}

func (c *Catalog) Products() []string {
	names := make([]string, 0, len(c.retail))
	for name := range c.retail {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
