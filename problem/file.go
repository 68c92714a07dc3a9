package problem

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	am "github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/areamethod/grammar"
	"gopkg.in/yaml.v3"
)

// problemFile is the YAML representation of a problem.
type problemFile struct {
	Name          string   `yaml:"name"`
	Flavor        string   `yaml:"flavor"`
	Points        names    `yaml:"points"`
	Params        names    `yaml:"params"`
	Constructions []string `yaml:"constructions"`
	Basis         names    `yaml:"basis"`
	Lines         []names  `yaml:"lines"`
	Extensions    []string `yaml:"extensions"`
	Prove         string   `yaml:"prove"`
	Eval          string   `yaml:"eval"`
	Expect        scalar   `yaml:"expect"`
}

// names is a list of names, given either as a YAML sequence or as a single
// blank-separated string.
type names []string

func (n *names) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*n = strings.Fields(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*n = list
		return nil
	}
	return am.Malformed("line %d: expected a list of names", node.Line)
}

// scalar keeps the text of a YAML scalar, whatever its tag.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return am.Malformed("line %d: expected a scalar", node.Line)
	}
	*s = scalar(node.Value)
	return nil
}

// Decode reads a problem from YAML.
func Decode(data []byte) (*Problem, error) {
	var f problemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", am.ErrMalformed, err)
	}
	return f.problem()
}

func (f problemFile) problem() (*Problem, error) {
	flavor, err := evaluator.ParseFlavor(f.Flavor)
	if err != nil {
		return nil, err
	}
	p := &Problem{Name: f.Name, Flavor: flavor, Scope: NewScope()}
	if err = p.Scope.Declare(am.Points(f.Points...)...); err != nil {
		return nil, err
	}
	for _, name := range f.Params {
		if err = p.Scope.DeclareParams(am.Param(name)); err != nil {
			return nil, err
		}
	}
	for _, text := range f.Constructions {
		stmts, err := grammar.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		for _, s := range stmts {
			if _, ok := s.(grammar.Construct); !ok {
				return nil, am.Malformed("%s: %v is not a construction", f.Name, s)
			}
			if _, err = p.Scope.Apply(s); err != nil {
				return nil, err
			}
		}
	}
	if len(f.Basis) > 0 {
		if len(f.Basis) != 3 {
			return nil, am.Malformed("%s: basis needs 3 points", f.Name)
		}
		if err = p.Scope.SetBasis(am.Point(f.Basis[0]), am.Point(f.Basis[1]), am.Point(f.Basis[2])); err != nil {
			return nil, err
		}
	}
	if len(f.Lines) > 0 {
		if len(f.Lines) != 2 {
			return nil, am.Malformed("%s: two-line mode needs 2 lines, has %d", f.Name, len(f.Lines))
		}
		if flavor != evaluator.FlavorAffine && f.Flavor != "" {
			return nil, am.Malformed("%s: two-line mode is affine", f.Name)
		}
		p.Flavor = evaluator.FlavorAffine
		if err = p.Scope.SetLines(am.Points(f.Lines[0]...), am.Points(f.Lines[1]...)); err != nil {
			return nil, err
		}
	}
	for _, text := range f.Extensions {
		e, err := grammar.ParseExpr(text)
		if err != nil {
			return nil, err
		}
		if err = p.Scope.AddExtension(e); err != nil {
			return nil, err
		}
	}
	switch {
	case f.Prove != "" && f.Eval != "":
		return nil, am.Malformed("%s: either prove or eval, not both", f.Name)
	case f.Prove != "":
		pred, err := grammar.ParsePredicate(f.Prove)
		if err != nil {
			return nil, err
		}
		p.Objective = evaluator.Statement(pred)
	case f.Eval != "":
		e, err := grammar.ParseExpr(f.Eval)
		if err != nil {
			return nil, err
		}
		p.Objective = evaluator.Expression(e)
	default:
		return nil, am.Malformed("%s: neither prove nor eval given", f.Name)
	}
	if err = p.Scope.Check(p.Objective); err != nil {
		return nil, err
	}
	if f.Expect != "" {
		x, err := ParseExpectation(string(f.Expect))
		if err != nil {
			return nil, err
		}
		if err = p.SetExpectation(x); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Load reads a problem file. Files ending in .yaml or .yml are YAML, all
// others are read as problem language text. Problems without a name are
// named after the file.
func Load(path string) (*Problem, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var p *Problem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = Decode(data)
	default:
		p, err = FromText(base, evaluator.FlavorPlane, string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = base
	}
	return p, nil
}
