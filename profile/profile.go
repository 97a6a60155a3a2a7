package profile

import (
	"io"
	"sort"

	"github.com/xh3b4sd/tracer"
	"gopkg.in/yaml.v3"

	"github.com/xh3b4sd/clickrank"
)

type Tool string

const (
	FFM Tool = "ffm"
	VW  Tool = "vw"
	XGB Tool = "xgb"
)

func (t Tool) Valid() bool {
	return t == FFM || t == VW || t == XGB
}

// Profile is the typed training configuration of one external learner.
//
//	ffm2-f4b:
//	  tool: ffm
//	  bags: 2
//	  epochs: 7
//	  dataset: f4
//
//	vw-p1:
//	  tool: vw
//	  options: --passes 3 -b 22 --nn 10 --ignore u --ignore t
//	  interactions: [aa, al, ld, lp, dp, fe, fa, fd, fl, fp, ff]
type Profile struct {
	Name string `yaml:"-"`
	Tool Tool   `yaml:"tool"`

	// Bags is the number of models trained with different seeds whose
	// predictions are averaged. Defaults to 1.
	Bags int `yaml:"bags"`
	// Dataset is the suffix of the exported dataset files in the cache.
	Dataset string `yaml:"dataset"`
	// Epochs is required for ffm profiles.
	Epochs int `yaml:"epochs"`
	// Interactions are the vw namespace pairs, each rendered as -q xy.
	Interactions []string `yaml:"interactions"`
	// Options are passed verbatim to the learner binary.
	Options string `yaml:"options"`
	// Params are the xgboost booster params.
	Params map[string]interface{} `yaml:"params"`
	// Rounds is the number of boosting rounds, required for xgb profiles.
	Rounds int   `yaml:"rounds"`
	Seed   int64 `yaml:"seed"`
}

// Load decodes and validates a YAML document of named profiles. The
// returned profiles are ordered by name.
func Load(r io.Reader) ([]Profile, error) {
	var raw map[string]Profile
	{
		err := yaml.NewDecoder(r).Decode(&raw)
		if err == io.EOF {
			return nil, nil
		} else if err != nil {
			return nil, tracer.Maskf(clickrank.InvalidInputError, "cannot decode profiles: %s", err.Error())
		}
	}

	var lis []Profile
	for k, v := range raw {
		v.Name = k

		if v.Bags == 0 {
			v.Bags = 1
		}

		err := v.Verify()
		if err != nil {
			return nil, tracer.Mask(err)
		}

		lis = append(lis, v)
	}

	sort.Slice(lis, func(i, j int) bool {
		return lis[i].Name < lis[j].Name
	})

	return lis, nil
}

// Find returns the profile with the given name.
func Find(lis []Profile, nam string) (Profile, error) {
	for _, p := range lis {
		if p.Name == nam {
			return p, nil
		}
	}

	return Profile{}, tracer.Maskf(clickrank.InvalidInputError, "unknown profile %q", nam)
}

func (p Profile) Verify() error {
	if !p.Tool.Valid() {
		return tracer.Maskf(clickrank.InvalidInputError, "profile %q has unknown tool %q", p.Name, p.Tool)
	}

	if p.Bags < 1 {
		return tracer.Maskf(clickrank.InvalidInputError, "profile %q must have at least one bag", p.Name)
	}

	switch p.Tool {
	case FFM:
		if p.Epochs <= 0 {
			return tracer.Maskf(clickrank.InvalidInputError, "ffm profile %q must define epochs", p.Name)
		}
		if p.Dataset == "" {
			return tracer.Maskf(clickrank.InvalidInputError, "ffm profile %q must define a dataset", p.Name)
		}
	case VW:
		for _, i := range p.Interactions {
			if len(i) != 2 {
				return tracer.Maskf(clickrank.InvalidInputError, "vw profile %q has invalid interaction %q", p.Name, i)
			}
		}
	case XGB:
		if p.Rounds <= 0 {
			return tracer.Maskf(clickrank.InvalidInputError, "xgb profile %q must define rounds", p.Name)
		}
	}

	return nil
}
