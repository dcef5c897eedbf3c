package repositoryImp

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/database"
	"agrocrm/entities"
	"agrocrm/pkg/lead/repository"
)

func TestListSearchTreatsWildcardsLiterally(t *testing.T) {
	t.Parallel()

	db, err := database.Open(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	r := New(db)

	for _, l := range []entities.Lead{
		{UserID: "u1", Name: "Ana", Farm: "Fazenda 50% soja", Status: entities.LeadCold},
		{UserID: "u1", Name: "Bia", Farm: "Fazenda 500 ha", Status: entities.LeadCold},
		{UserID: "u1", Name: "Caio", Email: "caio_silva@x.com", Status: entities.LeadWarm},
		{UserID: "u1", Name: "Davi", Email: "caiox@x.com", Status: entities.LeadWarm},
	} {
		l := l
		require.NoError(t, r.Create(&l))
	}

	names := func(search string) []string {
		list, err := r.List("u1", repository.Filter{Search: search})
		require.NoError(t, err)
		return lo.Map(list, func(l entities.Lead, _ int) string { return l.Name })
	}

	assert.Equal(t, []string{"Ana"}, names("50%"))
	assert.Equal(t, []string{"Caio"}, names("caio_"))
	assert.ElementsMatch(t, []string{"Ana", "Bia"}, names("fazenda 50"))
	assert.Empty(t, names(`\`))
}
