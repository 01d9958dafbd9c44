package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

func TestDecodeSurveyRecord_FullRecord(t *testing.T) {
	body := `{"Age":"30-34","Sex":"Female","BMI":27.5,"HighBP":"Yes","HighChol":"No","GenHlth":2,
		"PhysActivity":"Yes","Fruits":"No","Veggies":"Yes","DiffWalk":false}`

	r, err := model.DecodeSurveyRecord([]byte(body))
	require.NoError(t, err)

	age, ok := r.Age.Str()
	require.True(t, ok)
	assert.Equal(t, "30-34", age)

	bmi, ok := r.BMI.Number()
	require.True(t, ok)
	assert.Equal(t, 27.5, bmi)

	walk, ok := r.DiffWalk.Bool()
	require.True(t, ok)
	assert.False(t, walk)

	assert.Equal(t, model.KindNumber, r.GenHlth.Kind())
}

func TestDecodeSurveyRecord_MissingFieldsAreAbsent(t *testing.T) {
	r, err := model.DecodeSurveyRecord([]byte(`{"BMI":"31.2"}`))
	require.NoError(t, err)

	assert.Equal(t, model.KindString, r.BMI.Kind())
	for name, v := range map[string]model.FieldValue{
		"Age": r.Age, "Sex": r.Sex, "HighBP": r.HighBP, "HighChol": r.HighChol,
		"GenHlth": r.GenHlth, "PhysActivity": r.PhysActivity, "Fruits": r.Fruits,
		"Veggies": r.Veggies, "DiffWalk": r.DiffWalk,
	} {
		assert.True(t, v.IsAbsent(), "%s should be absent", name)
	}
}

func TestDecodeSurveyRecord_KeysAreCaseSensitive(t *testing.T) {
	r, err := model.DecodeSurveyRecord([]byte(`{"age":"80+","bmi":40,"Unknown":1}`))
	require.NoError(t, err)

	assert.True(t, r.Age.IsAbsent())
	assert.True(t, r.BMI.IsAbsent())
}

func TestDecodeSurveyRecord_Variants(t *testing.T) {
	r, err := model.DecodeSurveyRecord([]byte(`{"HighBP":null,"HighChol":[1],"Fruits":{"a":1},"Veggies":true}`))
	require.NoError(t, err)

	assert.Equal(t, model.KindNull, r.HighBP.Kind())
	assert.Equal(t, model.KindUnsupported, r.HighChol.Kind())
	assert.Equal(t, model.KindUnsupported, r.Fruits.Kind())
	assert.Equal(t, model.KindBool, r.Veggies.Kind())
	assert.Equal(t, "[1]", r.HighChol.String())
}

func TestDecodeSurveyRecord_NotAnObject(t *testing.T) {
	for _, body := range []string{`[]`, `"Yes"`, `42`, `null`, `true`} {
		t.Run(body, func(t *testing.T) {
			_, err := model.DecodeSurveyRecord([]byte(body))
			require.ErrorIs(t, err, model.ErrNotAnObject)
		})
	}
}

func TestDecodeSurveyRecord_InvalidJSON(t *testing.T) {
	_, err := model.DecodeSurveyRecord([]byte(`{"BMI":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotAnObject)
}

func TestSurveyRecord_MarshalJSON_OnlyPresentFields(t *testing.T) {
	r := model.SurveyRecord{
		Age:    model.StringValue("45-49"),
		BMI:    model.NumberValue(22.1),
		HighBP: model.BoolValue(true),
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Age":"45-49","BMI":22.1,"HighBP":true}`, string(data))

	back, err := model.DecodeSurveyRecord(data)
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestFieldValue_String(t *testing.T) {
	assert.Equal(t, "<absent>", model.FieldValue{}.String())
	assert.Equal(t, "null", model.NullValue().String())
	assert.Equal(t, `"abc"`, model.StringValue("abc").String())
	assert.Equal(t, "27.5", model.NumberValue(27.5).String())
	assert.Equal(t, "true", model.BoolValue(true).String())
}
