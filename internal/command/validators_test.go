// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		validator FlagValidatorType
		wantErr   bool
	}{
		{name: "output text", value: "text", validator: OutputValidator},
		{name: "output yaml", value: "yaml", validator: OutputValidator},
		{name: "output xml", value: "xml", validator: OutputValidator, wantErr: true},
		{name: "output not a string", value: 3, validator: OutputValidator, wantErr: true},
		{name: "entity quotes", value: "quotes", validator: EntityValidator},
		{name: "entity tickets", value: "tickets", validator: EntityValidator, wantErr: true},
		{name: "padding zero", value: 0, validator: PaddingValidator},
		{name: "padding negative", value: -2, validator: PaddingValidator, wantErr: true},
		{name: "padding not an int", value: "2", validator: PaddingValidator, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validator)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"name", "budget"}, splitList(" name, ,budget "))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "4 records", summary(4, 4, false))
	assert.Equal(t, "1 of 4 records", summary(1, 4, true))
}

func TestValueSources(t *testing.T) {
	chain := valueSources("", "", "output")
	assert.Empty(t, chain.Chain)

	chain = valueSources("query", "leadq.yaml", "output", "LEADQ_OUTPUT")
	assert.Len(t, chain.Chain, 3)

	chain = valueSources("", "leadq.yaml", "output")
	assert.Len(t, chain.Chain, 1)
}

func TestFilterFlagUsage(t *testing.T) {
	var filter *cli.StringFlag
	for _, f := range NewGlobalFlags("query", "") {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "filter" {
			filter = sf
		}
	}
	require.NotNil(t, filter)
	assert.Contains(t, filter.Usage, `\,`)
	assert.Contains(t, filter.Usage, "LEADQ_FILTER_DELIM")
}

func TestRecordCommandBuilder(t *testing.T) {
	cmd := (&RecordCommandBuilder{
		Name:  "query",
		Flags: NewQueryFlags("query", ""),
	}).Build()

	var names []string
	for _, f := range cmd.Flags {
		names = append(names, f.Names()[0])
	}
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "count")
	assert.Contains(t, names, "filter")
	assert.Contains(t, names, "sort")
	assert.NotNil(t, cmd.Before)
	assert.NotNil(t, cmd.Action)
	assert.Contains(t, cmd.Metadata, "meta")
}
