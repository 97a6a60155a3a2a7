package model

const deftem = `
import json
import pathlib

import numpy as np
import pandas as pd
import xgboost as xgb

################################################################################

PARAMS = json.loads('''{{ .Par }}''')

ROUNDS = {{ .Rou }}

################################################################################

def build_matrix(path):
  c = pd.read_csv(path, header=None)

  f = c.copy().astype('float')
  l = f.pop(0)

  return xgb.DMatrix(f, l)

################################################################################

def train_model(params, tra_mat, val_mat=None):
  evals = [(tra_mat, 'tra_mat')]
  callbacks = []

  if val_mat is not None:
    evals.append((val_mat, 'val_mat'))
    callbacks.append(xgb.callback.EarlyStopping(rounds=25))

  return xgb.train(
    params,
    tra_mat,
    num_boost_round=ROUNDS,
    callbacks=callbacks,
    evals=evals,
    verbose_eval=20,
  )

################################################################################

tra_mat = build_matrix("{{ .Tra }}")
tes_mat = build_matrix("{{ .Tes }}")
{{- if .Val }}
val_mat = build_matrix("{{ .Val }}")
{{- else }}
val_mat = None
{{- end }}

################################################################################

print("train model {{ .Nam }}")
model = train_model(PARAMS, tra_mat, val_mat)

################################################################################

if val_mat is not None:
  pre_mat = model.predict(tes_mat, iteration_range=(0, model.best_iteration + 1))
else:
  pre_mat = model.predict(tes_mat)

################################################################################

pathlib.Path("{{ .Out }}").parent.mkdir(parents=True, exist_ok=True)
np.savetxt("{{ .Out }}", pre_mat, fmt="%.9f")
`
