package activity_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/database"
	"agrocrm/entities"
	"agrocrm/pkg/activity"
	"agrocrm/pkg/activity/repositoryImp"
)

func TestRecorderWritesNewestFirst(t *testing.T) {
	t.Parallel()

	db, err := database.Open(filepath.Join(t.TempDir(), "act.db"))
	require.NoError(t, err)
	repo := repositoryImp.New(db)
	rec := activity.NewRecorder(repo)
	ctx := context.Background()

	for i, title := range []string{"primeiro", "segundo", "terceiro"} {
		rec.Record(ctx, entities.Activity{UserID: "u1", Type: activity.TypeLead, Title: title, Metadata: map[string]any{"n": i}})
	}
	rec.Record(ctx, entities.Activity{UserID: "u2", Type: activity.TypeSpray, Title: "outro"})
	rec.Record(ctx, entities.Activity{Type: activity.TypeSpray, Title: "sem dono"})

	got, err := repo.Recent("u1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "terceiro", got[0].Title)
	assert.Equal(t, "segundo", got[1].Title)
	assert.EqualValues(t, 2, got[0].Metadata["n"])

	var total int64
	require.NoError(t, db.Model(&entities.Activity{}).Count(&total).Error)
	assert.Equal(t, int64(4), total)
}
