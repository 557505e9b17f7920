package core

// Transformer mutates a Bundle in place.
type Transformer interface {
	Transform(b *Bundle) error
}

// Chain applies transformers in order, stopping at the first error.
func Chain(b *Bundle, transformers ...Transformer) error {
	for _, tr := range transformers {
		if err := tr.Transform(b); err != nil {
			return err
		}
	}
	return nil
}
