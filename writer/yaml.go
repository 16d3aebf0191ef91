package writer

import (
	"io"
	"iter"

	"github.com/hupe1980/neodb/model"
	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, results iter.Seq[*model.CloseApproach]) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(collect(results)); err != nil {
		return err
	}
	return enc.Close()
}
