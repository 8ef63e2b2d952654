package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
)

type fakeAPI struct {
	due      []models.Flashcard
	failNext bool
	rated    []string
}

func (f *fakeAPI) Due(ctx context.Context) ([]models.Flashcard, error) {
	return f.due, nil
}

func (f *fakeAPI) Rate(ctx context.Context, cardID string, q srs.Quality) (srs.Schedule, error) {
	if f.failNext {
		f.failNext = false
		return srs.Schedule{}, errors.New("connection reset")
	}
	f.rated = append(f.rated, cardID+":"+q.String())
	return srs.DefaultScheduler().Next(nil, q, time.Now())
}

func deck(fronts ...string) []models.Flashcard {
	cards := make([]models.Flashcard, len(fronts))
	for i, front := range fronts {
		cards[i] = models.Flashcard{ID: front, Front: front, Back: "resposta " + front}
	}
	return cards
}

func TestReviewSessionRatesEveryCard(t *testing.T) {
	api := &fakeAPI{due: deck("a", "b")}
	var out bytes.Buffer

	n, err := reviewSession(context.Background(), api, strings.NewReader("\n5\n\n0\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a:perfect", "b:forgot"}, api.rated)
	assert.Contains(t, out.String(), "Card 2 de 2")
	assert.Contains(t, out.String(), "resposta b")
	assert.Contains(t, out.String(), "Sessão concluída, 2 revisados.")
}

func TestReviewSessionNothingDue(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer

	n, err := reviewSession(context.Background(), api, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, out.String(), "Nada para revisar agora.")
}

func TestReviewSessionRetriesAfterBadInputAndFailures(t *testing.T) {
	api := &fakeAPI{due: deck("a"), failNext: true}
	var out bytes.Buffer

	n, err := reviewSession(context.Background(), api, strings.NewReader("\nx\n9\n4\n4\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a:good"}, api.rated)
	assert.Contains(t, out.String(), "Digite um número de 0 a 5.")
	assert.Contains(t, out.String(), "Não foi possível salvar: rate card a: connection reset")
}

func TestReviewSessionQuit(t *testing.T) {
	api := &fakeAPI{due: deck("a", "b")}
	var out bytes.Buffer

	n, err := reviewSession(context.Background(), api, strings.NewReader("\n3\nq\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a:hard"}, api.rated)
	assert.Contains(t, out.String(), "Sessão encerrada, 1 revisados.")
}

func TestDescribeDue(t *testing.T) {
	now := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "agora", describeDue(now, now))
	assert.Equal(t, "em 10 min", describeDue(now.Add(10*time.Minute), now))
	assert.Equal(t, "em 6 h", describeDue(now.Add(6*time.Hour), now))
	assert.True(t, strings.HasPrefix(describeDue(now.Add(6*24*time.Hour), now), "em 6 dias"))
}
