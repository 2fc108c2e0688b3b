package domain

// OverThresholdSignal is stored as the predicted value when a model can only say
// the day will exceed the alert threshold, without a numeric estimate.
const OverThresholdSignal = 401

// AlertThreshold is the predicted total above which a traffic alert is raised.
const AlertThreshold = 400

type Forecast struct {
	Actual    int  `json:"actual"`
	Predicted *int `json:"predicted,omitempty"`
}

func NewForecast(actual int) Forecast {
	return Forecast{Actual: actual}
}

func (f Forecast) WithPrediction(predicted int) Forecast {
	f.Predicted = &predicted
	return f
}

func (f Forecast) HasPrediction() bool {
	return f.Predicted != nil
}

func (f Forecast) PredictedValue() (int, bool) {
	if f.Predicted == nil {
		return 0, false
	}
	return *f.Predicted, true
}

// IsSignalOnly reports whether the prediction is the qualitative over-threshold
// marker rather than a numeric estimate.
func (f Forecast) IsSignalOnly() bool {
	return f.Predicted != nil && *f.Predicted == OverThresholdSignal
}
