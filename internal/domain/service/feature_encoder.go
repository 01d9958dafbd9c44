package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/valueobject"
)

// Defaults applied to fields missing from a survey record.
const (
	DefaultSex     = "Male"
	DefaultBMI     = 24.0
	DefaultYesNo   = "No"
	DefaultGenHlth = 3
)

// ErrCoercion is the sentinel wrapped by every CoercionError.
var ErrCoercion = errors.New("feature coercion failed")

// CoercionError reports a present field whose value cannot be turned into
// the number the model expects.
type CoercionError struct {
	Field  string
	Value  string
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %s value %s: %s", e.Field, e.Value, e.Reason)
}

func (e *CoercionError) Unwrap() error { return ErrCoercion }

// FeatureEncoder is a domain service that turns a SurveyRecord into the
// fixed-order FeatureVector consumed by the classifier.
type FeatureEncoder struct{}

// NewFeatureEncoder creates a new FeatureEncoder instance.
func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{}
}

// Encode resolves defaults and coerces every field. It fails only when a
// present value cannot be coerced, or coerces to a non-finite number.
func (e *FeatureEncoder) Encode(r model.SurveyRecord) (model.FeatureVector, error) {
	var v model.FeatureVector
	var err error

	v[model.FeatureAge], err = encodeAge(r.Age)
	if err != nil {
		return model.FeatureVector{}, err
	}
	v[model.FeatureSex], err = encodeSex(r.Sex)
	if err != nil {
		return model.FeatureVector{}, err
	}
	v[model.FeatureBMI], err = encodeBMI(r.BMI)
	if err != nil {
		return model.FeatureVector{}, err
	}
	v[model.FeatureGenHlth], err = encodeGenHlth(r.GenHlth)
	if err != nil {
		return model.FeatureVector{}, err
	}

	yesNo := []struct {
		idx   int
		value model.FieldValue
	}{
		{model.FeatureHighBP, r.HighBP},
		{model.FeatureHighChol, r.HighChol},
		{model.FeaturePhysActivity, r.PhysActivity},
		{model.FeatureFruits, r.Fruits},
		{model.FeatureVeggies, r.Veggies},
		{model.FeatureDiffWalk, r.DiffWalk},
	}
	for _, f := range yesNo {
		v[f.idx], err = encodeYesNo(model.FeatureNames[f.idx], f.value)
		if err != nil {
			return model.FeatureVector{}, err
		}
	}

	if err := v.Validate(); err != nil {
		return model.FeatureVector{}, fmt.Errorf("%w: %v", ErrCoercion, err)
	}
	return v, nil
}

// present folds explicit nulls into absence so that defaults apply.
func present(v model.FieldValue) bool {
	return v.Kind() != model.KindAbsent && v.Kind() != model.KindNull
}

func unsupported(field string, v model.FieldValue) error {
	return &CoercionError{Field: field, Value: v.String(), Reason: "arrays and objects are not accepted"}
}

// encodeAge looks the bucket up with an exact, case-sensitive match.
// Non-string scalars never match a bucket and encode as 1.
func encodeAge(v model.FieldValue) (float64, error) {
	if !present(v) {
		return float64(valueobject.AgeBucketCode(valueobject.DefaultAgeBucket)), nil
	}
	if v.Kind() == model.KindUnsupported {
		return 0, unsupported("Age", v)
	}
	s, _ := v.Str()
	return float64(valueobject.AgeBucketCode(s)), nil
}

// encodeSex yields 1 when the value equals "male" ignoring case, 0 otherwise.
func encodeSex(v model.FieldValue) (float64, error) {
	if !present(v) {
		v = model.StringValue(DefaultSex)
	}
	s, ok := v.Str()
	if !ok {
		return 0, &CoercionError{Field: "Sex", Value: v.String(), Reason: "expected a string"}
	}
	if strings.EqualFold(s, "male") {
		return 1, nil
	}
	return 0, nil
}

func encodeBMI(v model.FieldValue) (float64, error) {
	if !present(v) {
		return DefaultBMI, nil
	}
	switch v.Kind() {
	case model.KindNumber:
		n, _ := v.Number()
		return n, nil
	case model.KindBool:
		return boolToFloat(v), nil
	case model.KindString:
		s, _ := v.Str()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, &CoercionError{Field: "BMI", Value: v.String(), Reason: "not a number"}
		}
		return f, nil
	default:
		return 0, unsupported("BMI", v)
	}
}

// encodeYesNo maps "yes" (any case) to 1 and every other string to 0.
// Numbers are truncated toward zero and booleans become 1 or 0.
func encodeYesNo(field string, v model.FieldValue) (float64, error) {
	if !present(v) {
		v = model.StringValue(DefaultYesNo)
	}
	switch v.Kind() {
	case model.KindString:
		s, _ := v.Str()
		if strings.EqualFold(s, "yes") {
			return 1, nil
		}
		return 0, nil
	case model.KindNumber:
		n, _ := v.Number()
		return math.Trunc(n), nil
	case model.KindBool:
		return boolToFloat(v), nil
	default:
		return 0, unsupported(field, v)
	}
}

func encodeGenHlth(v model.FieldValue) (float64, error) {
	if !present(v) {
		return DefaultGenHlth, nil
	}
	switch v.Kind() {
	case model.KindNumber:
		n, _ := v.Number()
		return math.Trunc(n), nil
	case model.KindBool:
		return boolToFloat(v), nil
	case model.KindString:
		s, _ := v.Str()
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, &CoercionError{Field: "GenHlth", Value: v.String(), Reason: "not an integer"}
		}
		return float64(n), nil
	default:
		return 0, unsupported("GenHlth", v)
	}
}

func boolToFloat(v model.FieldValue) float64 {
	if b, _ := v.Bool(); b {
		return 1
	}
	return 0
}
