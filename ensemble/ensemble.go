package ensemble

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/xh3b4sd/tracer"
)

// Ensemble stacks base prediction sets with a second level model. Separate
// models are trained for present and future displays, using the logit of
// the base predictions as features.
type Ensemble struct {
	// Bas is the required list of base prediction names. For every name the
	// prediction directory must contain a validation and a test file.
	//
	//     $ tree -L 1 preds/
	//     preds/
	//     ├── 20161224-2245-vw-0.64495-test.csv.gz
	//     ├── 20161224-2245-vw-0.64495-val.csv.gz
	//     ├── 20161225-0051-ffm-0.65640-test.csv.gz
	//     └── 20161225-0051-ffm-0.65640-val.csv.gz
	//
	Bas []string
	Cmd *exec.Cmd
	Deb bool
	// Eve is the required events file used to assign displays to the present
	// or future model.
	Eve string
	Fil *os.File
	// Lab is the required file of labels for the validation predictions, in
	// the same row order.
	Lab string
	Log *slog.Logger
	// Mod is the second level learner, either lr or xgb. Defaults to lr.
	Mod string
	// Out is the required path the stacked test predictions are written to.
	Out string
	// Pat is the required prediction directory.
	Pat string
	// Pyt is the optional Python interpreter, python3 by default.
	Pyt string
	// Spl is the required present/future split threshold.
	Spl int64
	// Tem is the Python script template that is first being rendered and
	// persisted, and then executed in a child process.
	Tem string
}

func (e *Ensemble) Execute() ([]byte, error) {
	{
		e.configs()
	}

	var buf bytes.Buffer
	{
		t, err := template.New("ensemble").Parse(e.Tem)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		err = t.Execute(&buf, e.mapping())
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	return buf.Bytes(), nil
}

func (e *Ensemble) Train(ctx context.Context) error {
	var err error

	{
		e.configs()
	}

	var byt []byte
	{
		byt, err = e.Execute()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		e.Fil, err = os.CreateTemp("", "clickrank-ensemble-template-*")
		if err != nil {
			return tracer.Mask(err)
		}
		defer os.Remove(e.Fil.Name())
	}

	{
		_, err := e.Fil.Write(byt)
		if err != nil {
			e.Fil.Close()
			return tracer.Mask(err)
		}
	}

	{
		err := e.Fil.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		e.Cmd = exec.CommandContext(ctx, e.Pyt, e.Fil.Name())
	}

	if e.Deb {
		e.Cmd.Stdout = os.Stdout
		e.Cmd.Stderr = os.Stderr
	}

	{
		e.Log.Info("training ensemble", "model", e.Mod, "base", len(e.Bas), "out", e.Out)
	}

	{
		err := e.Cmd.Run()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

func (e *Ensemble) configs() {
	if len(e.Bas) == 0 {
		panic("Ensemble.Bas must not be empty")
	}

	if e.Eve == "" {
		panic("Ensemble.Eve must not be empty")
	}

	if e.Lab == "" {
		panic("Ensemble.Lab must not be empty")
	}

	if e.Log == nil {
		e.Log = slog.Default()
	}

	if e.Mod == "" {
		e.Mod = "lr"
	}

	if e.Mod != "lr" && e.Mod != "xgb" {
		panic("Ensemble.Mod must be lr or xgb")
	}

	if e.Out == "" {
		panic("Ensemble.Out must not be empty")
	}

	if e.Pat == "" {
		panic("Ensemble.Pat must not be empty")
	}

	if e.Pyt == "" {
		e.Pyt = "python3"
	}

	if e.Spl == 0 {
		panic("Ensemble.Spl must not be empty")
	}

	if e.Tem == "" {
		e.Tem = deftem
	}
}

func (e *Ensemble) mapping() map[string]interface{} {
	return map[string]interface{}{
		"Bas": e.Bas,
		"Eve": e.Eve,
		"Lab": e.Lab,
		"Mod": e.Mod,
		"Out": e.Out,
		"Pat": strings.TrimSuffix(e.Pat, "/"),
		"Spl": e.Spl,
	}
}
