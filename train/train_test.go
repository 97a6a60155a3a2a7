package train

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/profile"
)

const fakeFFM = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --pred) out="$2" ;;
    --seed) seed="$2" ;;
  esac
  shift
done
case "$seed" in
  100) printf '0.2\n0.4\n' > "$out" ;;
  *) printf '0.4\n0.8\n' > "$out" ;;
esac
`

const fakeVW = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    -p) out="$2" ;;
  esac
  shift
done
if [ -n "$out" ]; then
  printf '0 tag1\n0.5 tag2\n' > "$out"
fi
`

func binDir(t *testing.T, nam string, scr string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, nam), []byte(scr), 0755))

	return dir
}

func Test_Trainer_Commands_ffm(t *testing.T) {
	tr := Trainer{
		Bin: "/nonexistent",
		Cac: "cache",
		Pro: profile.Profile{Name: "ffm2-f4b", Tool: profile.FFM, Bags: 2, Epochs: 7, Dataset: "f4", Seed: 100, Options: "-k 4 -t 12"},
		Tmp: "tmp",
	}

	cmd, err := tr.Commands("val")
	require.NoError(t, err)
	require.Len(t, cmd, 2)

	assert.Equal(t, []string{
		"ffm", "-k", "4", "-t", "12",
		"--seed", "100", "--epochs", "7",
		"--val", "cache/val_test_bin_f4",
		"--train", "cache/val_train_bin_f4", "--test", "cache/val_test_bin_f4", "--pred", "tmp/ffm2-f4b.0.preds",
	}, cmd[0].Arg)
	assert.Equal(t, "tmp/ffm2-f4b.0.preds", cmd[0].Out)

	assert.Contains(t, cmd[1].Arg, "3507")
	assert.Equal(t, "tmp/ffm2-f4b.1.preds", cmd[1].Out)

	cmd, err = tr.Commands("full")
	require.NoError(t, err)
	assert.NotContains(t, cmd[0].Arg, "--val")
	assert.Contains(t, cmd[0].Arg, "cache/full_train_bin_f4")
}

func Test_Trainer_Commands_vw(t *testing.T) {
	tr := Trainer{
		Bin: "/nonexistent",
		Cac: "cache",
		Pro: profile.Profile{Name: "vw-p1", Tool: profile.VW, Bags: 1, Options: "--passes 3 -b 22", Interactions: []string{"aa", "al"}},
		Tmp: "tmp",
	}

	cmd, err := tr.Commands("val")
	require.NoError(t, err)
	require.Len(t, cmd, 2)

	assert.Equal(t, []string{
		"vw", "--cache", "-P", "5000000", "--loss_function", "logistic",
		"--passes", "3", "-b", "22",
		"-q", "aa", "-q", "al",
		"-f", "tmp/vw-p1.0.model", "cache/val_train_vw.txt",
	}, cmd[0].Arg)
	assert.Equal(t, []string{"cache/val_train_vw.txt.cache"}, cmd[0].Rem)
	assert.Empty(t, cmd[0].Out)

	assert.Equal(t, []string{
		"vw", "-i", "tmp/vw-p1.0.model", "-p", "tmp/vw-p1.0.preds", "-P", "5000000", "-t", "cache/val_test_vw.txt",
	}, cmd[1].Arg)
	assert.Equal(t, "tmp/vw-p1.0.preds", cmd[1].Out)
}

func Test_Trainer_Commands_xgb(t *testing.T) {
	tr := Trainer{
		Bin: "bin",
		Cac: "cache",
		Pro: profile.Profile{Name: "xgb-l1", Tool: profile.XGB, Bags: 1, Rounds: 10},
		Tmp: "tmp",
	}

	_, err := tr.Commands("val")
	require.Error(t, err)
	assert.True(t, clickrank.IsInvalidInput(err))
}

func Test_Trainer_Train_ffm(t *testing.T) {
	tr := Trainer{
		Bin: binDir(t, "ffm", fakeFFM),
		Cac: t.TempDir(),
		Pro: profile.Profile{Name: "ffm-p1", Tool: profile.FFM, Bags: 2, Epochs: 3, Dataset: "p1", Seed: 100},
		Tmp: t.TempDir(),
	}

	pre, err := tr.Train(context.Background(), "val")
	require.NoError(t, err)
	require.Len(t, pre, 2)

	assert.InDelta(t, 0.3, pre[0], 1e-12)
	assert.InDelta(t, 0.6, pre[1], 1e-12)
}

func Test_Trainer_Train_vw(t *testing.T) {
	cac := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cac, "val_train_vw.txt.cache"), nil, 0600))

	tr := Trainer{
		Bin: binDir(t, "vw", fakeVW),
		Cac: cac,
		Pro: profile.Profile{Name: "vw-p1", Tool: profile.VW, Bags: 1},
		Tmp: t.TempDir(),
	}

	pre, err := tr.Train(context.Background(), "val")
	require.NoError(t, err)
	require.Len(t, pre, 2)

	assert.InDelta(t, 0.5, pre[0], 1e-12)
	assert.InDelta(t, 0.6224593312018546, pre[1], 1e-12)

	_, err = os.Stat(filepath.Join(cac, "val_train_vw.txt.cache"))
	assert.True(t, os.IsNotExist(err))
}

func Test_Trainer_Train_failure(t *testing.T) {
	tr := Trainer{
		Bin: binDir(t, "ffm", "#!/bin/sh\nexit 1\n"),
		Cac: t.TempDir(),
		Pro: profile.Profile{Name: "ffm-p1", Tool: profile.FFM, Bags: 1, Epochs: 3, Dataset: "p1"},
		Tmp: t.TempDir(),
	}

	_, err := tr.Train(context.Background(), "val")
	require.Error(t, err)
}

func Test_Trainer_Train_mismatch(t *testing.T) {
	scr := `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --pred) out="$2" ;;
    --seed) seed="$2" ;;
  esac
  shift
done
case "$seed" in
  0) printf '0.2\n0.4\n' > "$out" ;;
  *) printf '0.4\n' > "$out" ;;
esac
`

	tr := Trainer{
		Bin: binDir(t, "ffm", scr),
		Cac: t.TempDir(),
		Pro: profile.Profile{Name: "ffm-p1", Tool: profile.FFM, Bags: 2, Epochs: 3, Dataset: "p1"},
		Tmp: t.TempDir(),
	}

	_, err := tr.Train(context.Background(), "val")
	require.Error(t, err)
	assert.True(t, IsPredictionMismatch(err))
}

func Test_readFloats(t *testing.T) {
	pat := filepath.Join(t.TempDir(), "p")
	require.NoError(t, os.WriteFile(pat, []byte("0.1\n\n0.25 tag\n-1.5\n"), 0600))

	out, err := readFloats(pat)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.25, -1.5}, out)

	require.NoError(t, os.WriteFile(pat, []byte("0.1\nnan?\n"), 0600))

	_, err = readFloats(pat)
	require.Error(t, err)
	assert.True(t, clickrank.IsInvalidInput(err))
}
