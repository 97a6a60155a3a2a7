package naming

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

const layout = "20060102-1504"

// Name identifies a prediction set by the time it was created, the model
// that produced it and its total validation score.
//
//     20161225-0051-ffm-0.65640
//     20170110-1055-ffm2-f1-2-0.69214
//
type Name struct {
	Time  time.Time
	Model string
	Score float64
}

func New(mod string, sco float64) Name {
	return Name{
		Time:  time.Now().UTC().Truncate(time.Minute),
		Model: mod,
		Score: sco,
	}
}

func (n Name) String() string {
	return fmt.Sprintf("%s-%s-%.5f", n.Time.Format(layout), n.Model, n.Score)
}

// Parse inverts Name.String. The model part may contain dashes itself.
func Parse(str string) (Name, error) {
	spl := strings.Split(str, "-")
	if len(spl) < 4 {
		return Name{}, tracer.Maskf(clickrank.InvalidInputError, "%q is not a prediction name", str)
	}

	tim, err := time.Parse(layout, spl[0]+"-"+spl[1])
	if err != nil {
		return Name{}, tracer.Maskf(clickrank.InvalidInputError, "%q has no valid time: %s", str, err.Error())
	}

	sco, err := strconv.ParseFloat(spl[len(spl)-1], 64)
	if err != nil {
		return Name{}, tracer.Maskf(clickrank.InvalidInputError, "%q has no valid score", str)
	}

	mod := strings.Join(spl[2:len(spl)-1], "-")
	if mod == "" {
		return Name{}, tracer.Maskf(clickrank.InvalidInputError, "%q has no model", str)
	}

	return Name{Time: tim, Model: mod, Score: sco}, nil
}

// List returns the names of all prediction files in the top level of dir
// that end with the given suffix, best scores first. Files whose names do
// not parse are skipped.
//
//     $ tree -L 1 preds/
//     preds/
//     ├── 20161224-2245-vw-0.64495-test.csv.gz
//     ├── 20161224-2245-vw-0.64495-val.csv.gz
//     ├── 20161225-0051-ffm-0.65640-test.csv.gz
//     └── 20161225-0051-ffm-0.65640-val.csv.gz
//
func List(dir string, suf string) ([]Name, error) {
	var lis []Name

	err := filepath.WalkDir(dir, func(pat string, ent fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if pat == dir {
			return nil
		}

		if ent.IsDir() {
			return filepath.SkipDir
		}

		if !strings.HasSuffix(ent.Name(), suf) {
			return nil
		}

		n, err := Parse(strings.TrimSuffix(ent.Name(), suf))
		if err != nil {
			return nil
		}

		lis = append(lis, n)

		return nil
	})
	if err != nil {
		return nil, tracer.Mask(err)
	}

	sort.SliceStable(lis, func(i, j int) bool {
		if lis[i].Score != lis[j].Score {
			return lis[i].Score > lis[j].Score
		}

		return lis[i].String() < lis[j].String()
	})

	return lis, nil
}
