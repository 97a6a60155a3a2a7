package ensemble

const deftem = `
import numpy as np
import pandas as pd

from scipy.special import logit
from sklearn.linear_model import LogisticRegression

import xgboost as xgb

################################################################################

BASE = [
{{- range $b := .Bas }}
    "{{ $b }}",
{{- end }}
]

SPLIT = {{ .Spl }}

################################################################################

def load_features(subset):
  x = []

  for b in BASE:
    p = pd.read_csv("{{ .Pat }}" + "/" + b + "-" + subset + ".csv.gz")
    x.append(logit(p['pred'].clip(1e-7, 1 - 1e-7)).rename(b))

  return pd.concat(x, axis=1)

################################################################################

def load_keys(subset):
  return pd.read_csv("{{ .Pat }}" + "/" + BASE[0] + "-" + subset + ".csv.gz", usecols=['display_id', 'ad_id'])

################################################################################

def new_model():
{{- if eq .Mod "xgb" }}
  return xgb.XGBClassifier(n_estimators=1500, max_depth=4, learning_rate=0.05, subsample=0.25, colsample_bytree=0.5, objective='binary:logistic')
{{- else }}
  return LogisticRegression(C=0.01)
{{- end }}

################################################################################

events = pd.read_csv("{{ .Eve }}", usecols=['display_id', 'timestamp'], index_col='display_id')

################################################################################

train_X = load_features("val")
train_k = load_keys("val")
train_y = pd.read_csv("{{ .Lab }}")['clicked'].values
train_t = events.loc[train_k['display_id'].values, 'timestamp'].values

present = train_t < SPLIT

print("train present model")
present_model = new_model().fit(train_X[present].values, train_y[present])

print("train future model")
future_model = new_model().fit(train_X[~present].values, train_y[~present])

################################################################################

test_X = load_features("test")
test_k = load_keys("test")
test_t = events.loc[test_k['display_id'].values, 'timestamp'].values

pred = np.where(
  test_t < SPLIT,
  present_model.predict_proba(test_X.values)[:, 1],
  future_model.predict_proba(test_X.values)[:, 1],
)

################################################################################

test_k['pred'] = pred
test_k.to_csv("{{ .Out }}", index=False)
`
