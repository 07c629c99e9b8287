package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Bear_River_Main", SanitizeName("Bear River/Main"))
	assert.Equal(t, "Jordan_Provo", SanitizeName("Jordan/Provo"))
	assert.Equal(t, "Weber", SanitizeName("Weber"))
	assert.Equal(t, "__", SanitizeName(" /"))
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "Bear_River_Main_timeseries.csv", OutputFileName("Bear River/Main"))
	assert.Equal(t, "Weber_timeseries.csv", OutputFileName("Weber"))
}
