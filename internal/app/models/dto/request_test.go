package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumberAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A FlexNumber `json:"a"`
		B FlexNumber `json:"b"`
		C FlexNumber `json:"c"`
		D FlexNumber `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "7", "c": "12.9", "d": null}`), &body))

	assert.Equal(t, 12, body.A.Int())
	assert.Equal(t, 7, body.B.Int())
	assert.Equal(t, 12, body.C.Int())
	assert.Equal(t, 12.9, body.C.Float())
	assert.Equal(t, 0, body.D.Int())
}

func TestFlexNumberRejectsGarbage(t *testing.T) {
	var body struct {
		A FlexNumber `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a": "twelve"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &body))
}
