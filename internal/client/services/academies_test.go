package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcademyFilter_Params(t *testing.T) {
	f := AcademyFilter{Term: " gracie ", PassType: "punch_card", Country: ""}

	assert.Equal(t, map[string]string{"term": "gracie", "pass_type": "punch_card"}, f.Params())
	assert.False(t, f.IsEmpty())
	assert.True(t, AcademyFilter{}.IsEmpty())
}

func TestBrowse_LoadsListAndLookups(t *testing.T) {
	b, c, _ := newBackend(t)
	b.on("GET /academies", http.StatusOK, `[{"id":1,"name":"Alliance"},{"id":2,"name":"Checkmat"}]`)
	b.on("GET /amenities", http.StatusOK, `[{"id":1,"name":"Showers"}]`)
	b.on("GET /countries", http.StatusOK, `[{"value":"NZ","label":"New Zealand"}]`)

	cat, err := NewAcademyService(c).Browse(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Academies, 2)
	assert.Len(t, cat.Amenities, 1)
	assert.Len(t, cat.Countries, 1)
}

func TestBrowse_AnyFailureFailsAll(t *testing.T) {
	b, c, _ := newBackend(t)
	b.on("GET /academies", http.StatusOK, `[]`)
	b.on("GET /countries", http.StatusOK, `[]`)

	_, err := NewAcademyService(c).Browse(context.Background())
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestSearch_SendsOnlyFilledFields(t *testing.T) {
	b, c, _ := newBackend(t)
	b.on("GET /academies", http.StatusOK, `[{"id":3,"name":"10th Planet"}]`)

	list, err := NewAcademyService(c).Search(context.Background(), AcademyFilter{Term: "planet", ClassDay: "2"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	calls := b.called(http.MethodGet, "/academies")
	require.Len(t, calls, 1)
	assert.Equal(t, "class_day=2&term=planet", calls[0].query)
}

func TestDetail(t *testing.T) {
	b, c, _ := newBackend(t)
	b.on("GET /academies/3", http.StatusOK, `{"id":3,"name":"10th Planet","photos":[{"id":1,"url":"/rails/a.jpg"}],"passes":[{"id":5,"name":"Drop in","price_cents":2500,"pass_type":"single"}]}`)

	d, err := NewAcademyService(c).Detail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "10th Planet", d.Name)
	assert.Equal(t, "https://cdn.example/rails/a.jpg", d.CoverURL("https://cdn.example"))
	require.Len(t, d.Passes, 1)
}
