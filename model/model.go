package model

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/profile"
)

type Model struct {
	Cmd *exec.Cmd
	Deb bool
	Fil *os.File
	Log *slog.Logger
	// Out is the required path the predictions for the test matrix are
	// written to, one probability per line.
	Out string
	// Pro is the required xgb profile providing booster params and the
	// number of boosting rounds.
	Pro profile.Profile
	// Pyt is the optional Python interpreter, python3 by default.
	Pyt string
	// Tem is the Python script template that is first being rendered and
	// persisted, and then executed in a child process.
	Tem string
	// Tes is the required test matrix in CSV format without header. The first
	// column is the label, all other columns are features.
	//
	//     0,1,0,0.25,17
	//     1,0,1,0.75,3
	//
	Tes string
	// Tra is the required training matrix, formatted like Tes.
	Tra string
	// Val is the optional validation matrix used for early stopping.
	Val string
}

func (m *Model) Execute() ([]byte, error) {
	{
		m.configs()
	}

	var dat map[string]interface{}
	{
		var err error

		dat, err = m.mapping()
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var buf bytes.Buffer
	{
		t, err := template.New("model").Parse(m.Tem)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		err = t.Execute(&buf, dat)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	return buf.Bytes(), nil
}

func (m *Model) Train(ctx context.Context) error {
	var err error

	{
		m.configs()
	}

	{
		err = m.cleanup()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var byt []byte
	{
		byt, err = m.Execute()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		m.Fil, err = os.CreateTemp("", "clickrank-model-template-*")
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		_, err := m.Fil.Write(byt)
		if err != nil {
			m.Fil.Close()
			return tracer.Mask(err)
		}
	}

	{
		err := m.Fil.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		err = os.WriteFile(m.temfilp(), []byte(m.Fil.Name()), 0664)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		m.Cmd = exec.CommandContext(ctx, m.Pyt, m.Fil.Name())
	}

	if m.Deb {
		m.Cmd.Stdout = os.Stdout
		m.Cmd.Stderr = os.Stderr
	}

	{
		m.Log.Info("training xgb model", "profile", m.Pro.Name, "script", m.Fil.Name(), "out", m.Out)
	}

	{
		err := m.Cmd.Run()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		err = m.cleanup()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

// cleanup removes the rendered script of a previous run, if any, together
// with the marker file pointing to it.
func (m *Model) cleanup() error {
	exi, err := exists(m.temfilp())
	if err != nil {
		return tracer.Mask(err)
	}

	if !exi {
		return nil
	}

	var scr string
	{
		byt, err := os.ReadFile(m.temfilp())
		if err != nil {
			return tracer.Mask(err)
		}

		scr = strings.TrimSpace(string(byt))
	}

	{
		exi, err := exists(scr)
		if err != nil {
			return tracer.Mask(err)
		}

		if exi {
			err := os.Remove(scr)
			if err != nil {
				return tracer.Mask(err)
			}
		}
	}

	{
		err := os.Remove(m.temfilp())
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

func (m *Model) configs() {
	if m.Log == nil {
		m.Log = slog.Default()
	}

	if m.Out == "" {
		panic("Model.Out must not be empty")
	}

	if m.Pro.Tool != profile.XGB {
		panic("Model.Pro must be an xgb profile")
	}

	if m.Pyt == "" {
		m.Pyt = "python3"
	}

	if m.Tem == "" {
		m.Tem = deftem
	}

	if m.Tes == "" {
		panic("Model.Tes must not be empty")
	}

	if m.Tra == "" {
		panic("Model.Tra must not be empty")
	}
}

func (m *Model) mapping() (map[string]interface{}, error) {
	par := m.Pro.Params
	if par == nil {
		par = map[string]interface{}{}
	}

	byt, err := json.Marshal(par)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	dat := map[string]interface{}{
		"Nam": m.Pro.Name,
		"Out": m.Out,
		"Par": string(byt),
		"Rou": m.Pro.Rounds,
		"Tes": m.Tes,
		"Tra": m.Tra,
		"Val": m.Val,
	}

	return dat, nil
}

func (m *Model) temfilp() string {
	return m.Out + ".pat"
}
