package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome"`
	Price       decimal.Decimal `json:"preco"`
	Description string          `json:"descricao"`
	Image       string          `json:"imagem"`
	Size        string          `json:"tamanho"`
	Label       string          `json:"rotulo"`
	Packaging   string          `json:"tipo_embalagem"`
	CapColor    string          `json:"cor_tampa"`
	Finish      string          `json:"acabamento_superficie"`
}

// Block is the fabrication descriptor the bancada understands.
type Block struct {
	Size    int `json:"tamanho"`
	Label1  int `json:"lamina1"`
	Label2  int `json:"lamina2"`
	Color   int `json:"cor"`
	Pattern int `json:"padrao"`
}

var (
	sizeCodes      = map[string]int{"Pequeno": 1, "Médio": 2, "Grande": 3}
	labelCodes     = map[string]int{"Sem rótulo": 0, "Padrão": 1, "Personalizado": 2}
	packagingCodes = map[string]int{"Vidro": 1, "Plástico": 2, "Acrílico": 3}
	colorCodes     = map[string]int{"Verde": 1, "Laranja": 2, "Roxo": 3}
	finishCodes    = map[string]int{"Fosco": 1, "Brilhante": 2, "Texturizado": 3}
)

// HasValidAttributes reports whether every fabrication attribute is one of the
// enumerated values accepted by the translation table.
func (p Product) HasValidAttributes() bool {
	_, err := p.Block()
	return err == nil
}

// Block translates the human-readable attributes into fabrication codes.
func (p Product) Block() (Block, error) {
	var b Block
	var ok bool
	if b.Size, ok = sizeCodes[p.Size]; !ok {
		return Block{}, fmt.Errorf("unknown tamanho %q", p.Size)
	}
	if b.Label1, ok = labelCodes[p.Label]; !ok {
		return Block{}, fmt.Errorf("unknown rotulo %q", p.Label)
	}
	if b.Label2, ok = packagingCodes[p.Packaging]; !ok {
		return Block{}, fmt.Errorf("unknown tipo_embalagem %q", p.Packaging)
	}
	if b.Color, ok = colorCodes[p.CapColor]; !ok {
		return Block{}, fmt.Errorf("unknown cor_tampa %q", p.CapColor)
	}
	if b.Pattern, ok = finishCodes[p.Finish]; !ok {
		return Block{}, fmt.Errorf("unknown acabamento_superficie %q", p.Finish)
	}
	return b, nil
}

// SKU encodes a block as a stable stock keeping unit, e.g. "BLK-2-1-3-2-1".
func (b Block) SKU() string {
	return fmt.Sprintf("BLK-%d-%d-%d-%d-%d", b.Size, b.Label1, b.Label2, b.Color, b.Pattern)
}
