package train

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/ctr"
	"github.com/xh3b4sd/clickrank/model"
	"github.com/xh3b4sd/clickrank/profile"
)

// seedStep separates the seeds of the bags of a single profile.
const seedStep = 3407

// Command is a single invocation of an external learner.
type Command struct {
	Arg []string
	// Out is the prediction file written by the command, if any.
	Out string
	// Rem are stale files removed before the command runs.
	Rem []string
}

type Trainer struct {
	// Bin is the required directory of the learner binaries. Binaries not
	// found there are looked up in PATH.
	Bin string
	// Cac is the required directory of the exported datasets.
	//
	//     $ tree -L 1 cache/
	//     cache/
	//     ├── full_test_bin_f4
	//     ├── full_train_bin_f4
	//     ├── full_test_vw.txt
	//     ├── full_train_vw.txt
	//     ├── val_test_bin_f4
	//     ├── val_train_bin_f4
	//     ├── val_test_xgb_x1.csv
	//     └── val_train_xgb_x1.csv
	//
	Cac string
	Deb bool
	Log *slog.Logger
	// Pro is the required training profile.
	Pro profile.Profile
	// Pyt is the optional Python interpreter used for xgb profiles.
	Pyt string
	// Tmp is the required scratch directory for models and raw predictions.
	Tmp string
}

// Commands returns the learner invocations needed to train and predict the
// given split, in execution order. The split is either "full" or the name of
// a validation split. Only the full split trains without a validation set.
func (t *Trainer) Commands(spl string) ([]Command, error) {
	{
		t.configs()
	}

	switch t.Pro.Tool {
	case profile.FFM:
		return t.ffm(spl), nil
	case profile.VW:
		return t.vw(spl), nil
	}

	return nil, tracer.Maskf(clickrank.InvalidInputError, "profile %q of tool %q runs no binaries", t.Pro.Name, t.Pro.Tool)
}

// Train runs the profile on the given split and returns one prediction per
// line of the split's test file.
func (t *Trainer) Train(ctx context.Context, spl string) ([]float64, error) {
	{
		t.configs()
	}

	if t.Pro.Tool == profile.XGB {
		return t.xgb(ctx, spl)
	}

	var cmd []Command
	{
		var err error

		cmd, err = t.Commands(spl)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var sum []float64
	var cnt int
	for _, c := range cmd {
		err := t.run(ctx, c)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		if c.Out == "" {
			continue
		}

		pre, err := readFloats(c.Out)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		if sum == nil {
			sum = make([]float64, len(pre))
		}

		if len(pre) != len(sum) {
			return nil, tracer.Maskf(predictionMismatchError, "%s has %d predictions, expected %d", c.Out, len(pre), len(sum))
		}

		for i, p := range pre {
			sum[i] += p
		}

		cnt++
	}

	for i := range sum {
		sum[i] /= float64(cnt)

		if t.Pro.Tool == profile.VW {
			sum[i] = ctr.Expit(sum[i])
		}
	}

	return sum, nil
}

func (t *Trainer) ffm(spl string) []Command {
	tra := filepath.Join(t.Cac, fmt.Sprintf("%s_train_bin_%s", spl, t.Pro.Dataset))
	tes := filepath.Join(t.Cac, fmt.Sprintf("%s_test_bin_%s", spl, t.Pro.Dataset))

	var cmd []Command
	for i := 0; i < t.Pro.Bags; i++ {
		out := filepath.Join(t.Tmp, fmt.Sprintf("%s.%d.preds", t.Pro.Name, i))

		arg := []string{t.binary("ffm")}
		arg = append(arg, strings.Fields(t.Pro.Options)...)
		arg = append(arg,
			"--seed", strconv.FormatInt(t.Pro.Seed+int64(i)*seedStep, 10),
			"--epochs", strconv.Itoa(t.Pro.Epochs),
		)

		if spl != "full" {
			arg = append(arg, "--val", tes)
		}

		arg = append(arg, "--train", tra, "--test", tes, "--pred", out)

		cmd = append(cmd, Command{Arg: arg, Out: out})
	}

	return cmd
}

func (t *Trainer) vw(spl string) []Command {
	tra := filepath.Join(t.Cac, fmt.Sprintf("%s_train_vw.txt", spl))
	tes := filepath.Join(t.Cac, fmt.Sprintf("%s_test_vw.txt", spl))

	var cmd []Command
	for i := 0; i < t.Pro.Bags; i++ {
		mod := filepath.Join(t.Tmp, fmt.Sprintf("%s.%d.model", t.Pro.Name, i))
		out := filepath.Join(t.Tmp, fmt.Sprintf("%s.%d.preds", t.Pro.Name, i))

		arg := []string{t.binary("vw"), "--cache", "-P", "5000000", "--loss_function", "logistic"}
		arg = append(arg, strings.Fields(t.Pro.Options)...)
		if t.Pro.Bags > 1 {
			arg = append(arg, "--random_seed", strconv.FormatInt(t.Pro.Seed+int64(i)*seedStep, 10))
		}
		for _, q := range t.Pro.Interactions {
			arg = append(arg, "-q", q)
		}
		arg = append(arg, "-f", mod, tra)

		cmd = append(cmd, Command{Arg: arg, Rem: []string{tra + ".cache"}})

		cmd = append(cmd, Command{
			Arg: []string{t.binary("vw"), "-i", mod, "-p", out, "-P", "5000000", "-t", tes},
			Out: out,
			Rem: []string{tes + ".cache"},
		})
	}

	return cmd
}

func (t *Trainer) xgb(ctx context.Context, spl string) ([]float64, error) {
	m := model.Model{
		Deb: t.Deb,
		Log: t.Log,
		Out: filepath.Join(t.Tmp, t.Pro.Name+".preds"),
		Pro: t.Pro,
		Pyt: t.Pyt,
		Tes: filepath.Join(t.Cac, fmt.Sprintf("%s_test_xgb_%s.csv", spl, t.Pro.Dataset)),
		Tra: filepath.Join(t.Cac, fmt.Sprintf("%s_train_xgb_%s.csv", spl, t.Pro.Dataset)),
	}

	if spl != "full" {
		m.Val = m.Tes
	}

	{
		err := m.Train(ctx)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	pre, err := readFloats(m.Out)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return pre, nil
}

func (t *Trainer) run(ctx context.Context, c Command) error {
	for _, r := range c.Rem {
		err := os.Remove(r)
		if err != nil && !os.IsNotExist(err) {
			return tracer.Mask(err)
		}
	}

	cmd := exec.CommandContext(ctx, c.Arg[0], c.Arg[1:]...)

	if t.Deb {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	{
		t.Log.Info("running learner", "profile", t.Pro.Name, "command", strings.Join(c.Arg, " "))
	}

	{
		err := cmd.Run()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

// binary resolves the given learner name within Bin, falling back to the
// bare name so that exec finds it in PATH.
func (t *Trainer) binary(nam string) string {
	pat := filepath.Join(t.Bin, nam)

	_, err := os.Stat(pat)
	if err != nil {
		return nam
	}

	return pat
}

func (t *Trainer) configs() {
	if t.Bin == "" {
		panic("Trainer.Bin must not be empty")
	}

	if t.Cac == "" {
		panic("Trainer.Cac must not be empty")
	}

	if t.Log == nil {
		t.Log = slog.Default()
	}

	if t.Pro.Name == "" {
		panic("Trainer.Pro must not be empty")
	}

	if t.Tmp == "" {
		panic("Trainer.Tmp must not be empty")
	}
}

// readFloats reads one number per line. Trailing fields, like the tags vw
// appends to its predictions, are ignored.
func readFloats(pat string) ([]float64, error) {
	f, err := os.Open(pat)
	if err != nil {
		return nil, tracer.Mask(err)
	}
	defer f.Close()

	var out []float64

	s := bufio.NewScanner(f)
	for lin := 1; s.Scan(); lin++ {
		fie := strings.Fields(s.Text())
		if len(fie) == 0 {
			continue
		}

		v, err := strconv.ParseFloat(fie[0], 64)
		if err != nil {
			return nil, tracer.Maskf(clickrank.InvalidInputError, "%s:%d: %q is not a number", pat, lin, fie[0])
		}

		out = append(out, v)
	}

	{
		err := s.Err()
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	return out, nil
}
