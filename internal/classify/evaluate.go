package classify

import "errors"

// ErrNoEvalSamples is returned when Evaluate receives no usable samples.
var ErrNoEvalSamples = errors.New("classify: no usable evaluation samples")

// ClassMetrics holds per-label evaluation results.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluation summarizes model performance on a labeled set. Weighted
// averages are support-weighted over the true labels.
type Evaluation struct {
	Accuracy          float64                   `json:"accuracy"`
	WeightedPrecision float64                   `json:"weighted_precision"`
	WeightedRecall    float64                   `json:"weighted_recall"`
	WeightedF1        float64                   `json:"weighted_f1"`
	PerClass          map[string]ClassMetrics   `json:"per_class"`
	Confusion         map[string]map[string]int `json:"confusion_matrix"`
	Samples           int                       `json:"samples"`
}

// Evaluate predicts every usable sample and scores the result against its
// label. Samples whose text cleans to empty are skipped.
func (c *Classifier) Evaluate(samples []Sample) (Evaluation, error) {
	if !c.Trained() {
		return Evaluation{}, ErrNoTrainingData
	}

	confusion := make(map[string]map[string]int)
	support := make(map[string]int)
	correct := 0
	total := 0

	for _, s := range samples {
		if cleanText(s.Text) == "" || s.Label == "" {
			continue
		}
		pred := c.PredictText(s.Text)
		total++
		support[s.Label]++
		if confusion[s.Label] == nil {
			confusion[s.Label] = make(map[string]int)
		}
		confusion[s.Label][pred.Name]++
		if pred.Name == s.Label {
			correct++
		}
	}
	if total == 0 {
		return Evaluation{}, ErrNoEvalSamples
	}

	perClass := make(map[string]ClassMetrics)
	var wPrecision, wRecall, wF1 float64
	for label, n := range support {
		tp := confusion[label][label]
		fn := n - tp
		fp := 0
		for trueLabel, row := range confusion {
			if trueLabel != label {
				fp += row[label]
			}
		}

		var precision, recall, f1 float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		perClass[label] = ClassMetrics{Precision: precision, Recall: recall, F1: f1, Support: n}

		weight := float64(n) / float64(total)
		wPrecision += weight * precision
		wRecall += weight * recall
		wF1 += weight * f1
	}

	return Evaluation{
		Accuracy:          float64(correct) / float64(total),
		WeightedPrecision: wPrecision,
		WeightedRecall:    wRecall,
		WeightedF1:        wF1,
		PerClass:          perClass,
		Confusion:         confusion,
		Samples:           total,
	}, nil
}
