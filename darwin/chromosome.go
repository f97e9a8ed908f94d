package darwin

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Chromosome is an ordered group of genes. The number of genes is fixed once
// the chromosome is built; only gene contents change.
type Chromosome struct {
	genes []*Gene
}

// NewChromosome builds a chromosome from the given genes in order.
func NewChromosome(genes ...*Gene) (*Chromosome, error) {
	for i, g := range genes {
		if g == nil {
			return nil, fmt.Errorf("%w: position %d", ErrNilGene, i)
		}
	}
	return &Chromosome{genes: slices.Clone(genes)}, nil
}

// Len returns the number of genes.
func (c *Chromosome) Len() int {
	return len(c.genes)
}

// Gene returns the gene at position i.
func (c *Chromosome) Gene(i int) *Gene {
	return c.genes[i]
}

// Genes returns the chromosome's genes. The slice is a copy; the genes are not.
func (c *Chromosome) Genes() []*Gene {
	return slices.Clone(c.genes)
}

// Clone creates a deep copy of the Chromosome.
func (c *Chromosome) Clone() *Chromosome {
	genes := make([]*Gene, len(c.genes))
	for i, g := range c.genes {
		genes[i] = g.Clone()
	}
	return &Chromosome{genes: genes}
}

// String returns a string representation of the Chromosome.
func (c *Chromosome) String() string {
	parts := make([]string, len(c.genes))
	for i, g := range c.genes {
		parts[i] = fmt.Sprintf("%v", g.value)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
