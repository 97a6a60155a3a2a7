package model

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh3b4sd/clickrank/profile"
)

func testProfile() profile.Profile {
	return profile.Profile{
		Name:   "xgb-l1",
		Tool:   profile.XGB,
		Bags:   1,
		Rounds: 1500,
		Params: map[string]interface{}{
			"objective": "binary:logistic",
			"max_depth": 4,
		},
	}
}

func Test_Model_Execute(t *testing.T) {
	m := Model{
		Out: "/tmp/preds/xgb.preds",
		Pro: testProfile(),
		Tes: "/tmp/cache/val_test_xgb.csv",
		Tra: "/tmp/cache/val_train_xgb.csv",
		Val: "/tmp/cache/val_test_xgb.csv",
	}

	byt, err := m.Execute()
	require.NoError(t, err)

	scr := string(byt)
	assert.Contains(t, scr, `PARAMS = json.loads('''{"max_depth":4,"objective":"binary:logistic"}''')`)
	assert.Contains(t, scr, "ROUNDS = 1500")
	assert.Contains(t, scr, `tra_mat = build_matrix("/tmp/cache/val_train_xgb.csv")`)
	assert.Contains(t, scr, `val_mat = build_matrix("/tmp/cache/val_test_xgb.csv")`)
	assert.Contains(t, scr, `np.savetxt("/tmp/preds/xgb.preds", pre_mat, fmt="%.9f")`)
	assert.Contains(t, scr, `print("train model xgb-l1")`)
}

func Test_Model_Execute_no_validation(t *testing.T) {
	m := Model{
		Out: "out.preds",
		Pro: testProfile(),
		Tes: "tes.csv",
		Tra: "tra.csv",
	}

	byt, err := m.Execute()
	require.NoError(t, err)
	assert.Contains(t, string(byt), "val_mat = None")
	assert.NotContains(t, string(byt), "build_matrix(\"\")")
}

func Test_Model_Execute_template(t *testing.T) {
	m := Model{
		Out: "out.preds",
		Pro: testProfile(),
		Tem: "{{ .Nam }} {{ .Rou }} {{ .Tra }}",
		Tes: "tes.csv",
		Tra: "tra.csv",
	}

	byt, err := m.Execute()
	require.NoError(t, err)
	assert.Equal(t, "xgb-l1 1500 tra.csv", string(byt))
}

func Test_Model_configs(t *testing.T) {
	assert.Panics(t, func() {
		m := Model{Pro: testProfile(), Tes: "a", Tra: "b"}
		m.Execute()
	})

	assert.Panics(t, func() {
		m := Model{Out: "o", Pro: profile.Profile{Tool: profile.VW}, Tes: "a", Tra: "b"}
		m.Execute()
	})
}

func Test_Model_Train(t *testing.T) {
	dir := t.TempDir()

	// A shell stands in for the Python interpreter, executing the rendered
	// script as a shell script.
	m := Model{
		Out: filepath.Join(dir, "xgb.preds"),
		Pro: testProfile(),
		Pyt: "sh",
		Tem: "printf '0.25\\n0.75\\n' > {{ .Out }}\n",
		Tes: "tes.csv",
		Tra: "tra.csv",
	}

	require.NoError(t, m.Train(context.Background()))

	byt, err := os.ReadFile(m.Out)
	require.NoError(t, err)
	assert.Equal(t, "0.25\n0.75\n", string(byt))

	exi, err := exists(m.Out + ".pat")
	require.NoError(t, err)
	assert.False(t, exi)

	exi, err = exists(m.Fil.Name())
	require.NoError(t, err)
	assert.False(t, exi)
}

func Test_Model_Train_failure(t *testing.T) {
	dir := t.TempDir()

	m := Model{
		Out: filepath.Join(dir, "xgb.preds"),
		Pro: testProfile(),
		Pyt: "sh",
		Tem: "exit 3\n",
		Tes: "tes.csv",
		Tra: "tra.csv",
	}

	err := m.Train(context.Background())
	require.Error(t, err)

	byt, err := os.ReadFile(m.Out + ".pat")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(byt), "clickrank-model-template-"))

	// The next run removes the leftovers of the failed one.
	m.Tem = "true\n"
	require.NoError(t, m.Train(context.Background()))

	exi, err := exists(m.Out + ".pat")
	require.NoError(t, err)
	assert.False(t, exi)
}
