package jsonfix

import (
	"errors"
	"testing"

	"charm.land/jsonfix/diag"
	"charm.land/jsonfix/strict"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	t.Run("blank input is empty", func(t *testing.T) {
		for _, text := range []string{"", "   ", "\n\t"} {
			doc := Check(text)
			require.Equal(t, StateEmpty, doc.State)
			require.False(t, doc.Valid())
			require.Nil(t, doc.Diagnostic())
			require.ErrorIs(t, doc.Err(), ErrEmptyInput)
		}
	})

	t.Run("valid input", func(t *testing.T) {
		doc := Check(`{"a":1}`)
		require.Equal(t, StateValid, doc.State)
		require.True(t, doc.Valid())
		require.NoError(t, doc.Err())
	})

	t.Run("invalid input is located", func(t *testing.T) {
		doc := Check("{\n  \"a\":\n}")
		require.Equal(t, StateInvalid, doc.State)

		d := doc.Diagnostic()
		require.NotNil(t, d)
		require.Equal(t, 3, d.Line)
		require.Equal(t, 1, d.Column)

		var e *diag.Error
		require.True(t, errors.As(doc.Err(), &e))
		require.Equal(t, d.Message, e.Message)
	})

	t.Run("jsontext engine", func(t *testing.T) {
		doc := Check(`{"a":}`, WithEngine(strict.JSONText{}))
		require.Equal(t, StateInvalid, doc.State)
		require.NotNil(t, doc.Diagnostic())
		require.Equal(t, 1, doc.Diagnostic().Line)
	})
}

func TestDocumentFormatting(t *testing.T) {
	doc := Check(`{ "b" : [ true , null ] , "a" : "x" }`)

	pretty, err := doc.Pretty()
	require.NoError(t, err)
	require.Equal(t, "{\n  \"b\": [\n    true,\n    null\n  ],\n  \"a\": \"x\"\n}", pretty)

	min, err := doc.Minify()
	require.NoError(t, err)
	require.Equal(t, `{"b":[true,null],"a":"x"}`, min)

	_, err = Check(`{`).Pretty()
	require.ErrorIs(t, err, ErrNotValid)
	_, err = Check("").Minify()
	require.ErrorIs(t, err, ErrNotValid)
}

func TestDocumentTokens(t *testing.T) {
	doc := Check(`[1, "two"]`)
	var text string
	for _, tok := range doc.Tokens() {
		text += tok.Text
	}
	require.Equal(t, doc.Input, text)
}

func TestDocumentRepair(t *testing.T) {
	t.Run("repairs invalid input", func(t *testing.T) {
		doc := Check(`{a:'b', c:1,}`).Repair()
		require.Equal(t, StateRepaired, doc.State)
		require.Equal(t, `{"a":"b","c":1}`, doc.Input)
		require.True(t, doc.Valid())
	})

	t.Run("keeps unrepairable input", func(t *testing.T) {
		before := Check(`{{{`)
		after := before.Repair()
		require.Equal(t, before, after)
		require.Equal(t, StateInvalid, after.State)
		require.NotNil(t, after.Diagnostic())
	})

	t.Run("valid and empty are untouched", func(t *testing.T) {
		valid := Check(`[1]`)
		require.Equal(t, valid, valid.Repair())
		empty := Check(" ")
		require.Equal(t, empty, empty.Repair())
	})

	t.Run("max depth", func(t *testing.T) {
		doc := Check(`[[[[1`).Repair(WithMaxDepth(2))
		require.Equal(t, StateInvalid, doc.State)
		require.Equal(t, `[[[[1`, doc.Input)

		doc = Check(`[[[[1`).Repair()
		require.Equal(t, StateRepaired, doc.State)
		require.Equal(t, `[[[[1]]]]`, doc.Input)
	})

	t.Run("accepted by the selected engine", func(t *testing.T) {
		doc := Check(`{'k': True}`, WithEngine(strict.JSONText{})).Repair(WithEngine(strict.JSONText{}))
		require.Equal(t, StateRepaired, doc.State)
		require.Equal(t, `{"k":true}`, doc.Input)
	})
}
