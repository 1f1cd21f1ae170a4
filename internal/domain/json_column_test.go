package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONList_Value(t *testing.T) {
	var empty JSONList[string]
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	foods := JSONList[FoodItem]{{Name: "oatmeal", Calories: 150}}
	v, err = foods.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"oatmeal","calories":150}]`, v.(string))
}

func TestJSONList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    JSONList[string]
		wantErr bool
	}{
		{name: "bytes", src: []byte(`["fever","cough"]`), want: JSONList[string]{"fever", "cough"}},
		{name: "string", src: `["nausea"]`, want: JSONList[string]{"nausea"}},
		{name: "null", src: nil, want: nil},
		{name: "unsupported type", src: 42, wantErr: true},
		{name: "malformed", src: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got JSONList[string]
			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_Age(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	dob := func(s string) *string { return &s }

	tests := []struct {
		name string
		dob  *string
		want *int
	}{
		{name: "no date of birth", dob: nil},
		{name: "unparseable", dob: dob("15/06/1990")},
		{name: "birthday today", dob: dob("1990-06-15"), want: intPtr(34)},
		{name: "birthday later this year", dob: dob("1990-06-16"), want: intPtr(33)},
		{name: "birthday earlier this year", dob: dob("1990-01-01"), want: intPtr(34)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{DateOfBirth: tt.dob}
			assert.Equal(t, tt.want, u.Age(now))
		})
	}
}

func intPtr(v int) *int { return &v }
