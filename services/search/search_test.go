package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upb/retrieval-gateway/models"
)

func doc(id, title, body string) models.Document {
	return models.Document{DocID: id, TenantID: "tenant-a", Classification: models.ClassificationPublic, Title: title, Body: body}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"payroll", "numbers"}, Tokenize("  Payroll   NUMBERS "))
	assert.Nil(t, Tokenize("   "))
}

func TestScore(t *testing.T) {
	d := doc("1", "Payroll Guide", "payroll payroll payroll")
	assert.Equal(t, 4, Score(d, []string{"payroll"}))
	assert.Equal(t, 0, Score(d, []string{"vacation"}))
}

func TestRankOrdersByScore(t *testing.T) {
	docs := []models.Document{
		doc("low", "note", "payroll once"),
		doc("high", "payroll", "payroll payroll payroll"),
		doc("none", "unrelated", "holiday schedule"),
	}

	ranked := Rank(docs, "payroll")

	require.Len(t, ranked, 2)
	assert.Equal(t, "high", ranked[0].DocID)
	assert.Equal(t, "low", ranked[1].DocID)
}

func TestRankDropsZeroScores(t *testing.T) {
	docs := []models.Document{doc("1", "a", "b")}
	assert.Empty(t, Rank(docs, "missing"))
}

func TestRankCapsResults(t *testing.T) {
	var docs []models.Document
	for i := 0; i < MaxResults+5; i++ {
		docs = append(docs, doc(fmt.Sprintf("d%d", i), "payroll", "payroll"))
	}
	assert.Len(t, Rank(docs, "payroll"), MaxResults)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	docs := []models.Document{
		doc("a", "x", "payroll"),
		doc("b", "y", "payroll payroll"),
	}
	_ = Rank(docs, "payroll")
	assert.Equal(t, "a", docs[0].DocID)
	assert.Equal(t, "b", docs[1].DocID)
}
