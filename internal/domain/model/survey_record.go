package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotAnObject is returned when a survey payload is not a JSON object.
var ErrNotAnObject = errors.New("survey record must be a JSON object")

// SurveyRecord is one loosely typed health-survey submission. Every field is
// optional; absent fields are resolved to defaults by the feature encoder.
type SurveyRecord struct {
	Age          FieldValue
	Sex          FieldValue
	BMI          FieldValue
	HighBP       FieldValue
	HighChol     FieldValue
	GenHlth      FieldValue
	PhysActivity FieldValue
	Fruits       FieldValue
	Veggies      FieldValue
	DiffWalk     FieldValue
}

// fields maps the wire key of each recognized field to its slot.
// Keys are matched exactly, unlike encoding/json's case-insensitive matching.
func (r *SurveyRecord) fields() map[string]*FieldValue {
	return map[string]*FieldValue{
		"Age":          &r.Age,
		"Sex":          &r.Sex,
		"BMI":          &r.BMI,
		"HighBP":       &r.HighBP,
		"HighChol":     &r.HighChol,
		"GenHlth":      &r.GenHlth,
		"PhysActivity": &r.PhysActivity,
		"Fruits":       &r.Fruits,
		"Veggies":      &r.Veggies,
		"DiffWalk":     &r.DiffWalk,
	}
}

// UnmarshalJSON decodes a JSON object, ignoring unknown keys.
func (r *SurveyRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ErrNotAnObject
		}
		return fmt.Errorf("decode survey record: %w", err)
	}
	if raw == nil {
		return ErrNotAnObject
	}

	*r = SurveyRecord{}
	for key, slot := range r.fields() {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if err := slot.UnmarshalJSON(value); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON encodes only the fields that were present.
func (r SurveyRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]FieldValue)
	for key, slot := range r.fields() {
		if !slot.IsAbsent() {
			out[key] = *slot
		}
	}
	return json.Marshal(out)
}

// DecodeSurveyRecord parses a request body into a SurveyRecord.
func DecodeSurveyRecord(data []byte) (SurveyRecord, error) {
	var r SurveyRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return SurveyRecord{}, err
	}
	return r, nil
}
