package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocrm/database"
	"agrocrm/entities"
	"agrocrm/pkg/activity"
	activityRepo "agrocrm/pkg/activity/repositoryImp"
	"agrocrm/pkg/apperr"
	"agrocrm/pkg/lead/repository"
	"agrocrm/pkg/lead/repositoryImp"
	"agrocrm/pkg/lead/service"
	"agrocrm/pkg/realtime"
)

func newService(t *testing.T) (service.LeadService, chan realtime.Event) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)

	b := realtime.NewBroker(16)
	ch := b.Subscribe()
	t.Cleanup(func() { b.Unsubscribe(ch) })
	return NewLeadService(repositoryImp.New(db), b, activity.NewRecorder(activityRepo.New(db))), ch
}

func lead(name, farm, status string) *entities.Lead {
	return &entities.Lead{Name: name, Phone: "+55 11 99999-0000", Email: name + "@example.com", Farm: farm, Status: status}
}

func TestSaveCreatesWithDefaultStatus(t *testing.T) {
	t.Parallel()
	svc, events := newService(t)

	out, err := svc.Save(context.Background(), "u1", lead("ana", "Boa Vista", ""))
	require.NoError(t, err)
	assert.NotZero(t, out.LeadID)
	assert.Equal(t, "u1", out.UserID)
	assert.Equal(t, entities.LeadCold, out.Status)

	ev := <-events
	assert.Equal(t, realtime.Insert, ev.Type)
	assert.Equal(t, out.LeadID, ev.ID)
}

func TestSaveValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "u1", &entities.Lead{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, "name, phone, email required", apperr.Message(err))

	_, err = svc.Save(ctx, "u1", lead("bia", "", "gelado"))
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestSaveUpdatesOwnLeadOnly(t *testing.T) {
	t.Parallel()
	svc, events := newService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, "u1", lead("caio", "Santa Rita", entities.LeadCold))
	require.NoError(t, err)
	<-events

	upd := *created
	upd.Status = entities.LeadHot
	upd.Hectares = 320
	out, err := svc.Save(ctx, "u1", &upd)
	require.NoError(t, err)
	assert.Equal(t, entities.LeadHot, out.Status)
	assert.Equal(t, realtime.Update, (<-events).Type)

	foreign := *created
	_, err = svc.Save(ctx, "u2", &foreign)
	assert.Equal(t, 404, apperr.Status(err))
}

func TestListSearchAndStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	for _, l := range []*entities.Lead{
		lead("ana", "Fazenda Boa Vista", entities.LeadCold),
		lead("bruno", "Sítio Alegre", entities.LeadHot),
		lead("carla", "Boa Esperança", entities.LeadWarm),
	} {
		_, err := svc.Save(ctx, "u1", l)
		require.NoError(t, err)
	}
	_, err := svc.Save(ctx, "u2", lead("ana", "Outra", entities.LeadCold))
	require.NoError(t, err)

	all, err := svc.List("u1", repository.Filter{Status: "all"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "carla", all[0].Name)

	boa, err := svc.List("u1", repository.Filter{Search: "BOA"})
	require.NoError(t, err)
	assert.Len(t, boa, 2)

	byEmail, err := svc.List("u1", repository.Filter{Search: "bruno@"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	hot, err := svc.List("u1", repository.Filter{Status: entities.LeadHot})
	require.NoError(t, err)
	require.Len(t, hot, 1)
	assert.Equal(t, "bruno", hot[0].Name)
}

func TestStatsAndDelete(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	var last *entities.Lead
	for _, st := range []string{entities.LeadCold, entities.LeadCold, entities.LeadHot} {
		l, err := svc.Save(ctx, "u1", lead("x", "", st))
		require.NoError(t, err)
		last = l
	}

	st, err := svc.Stats("u1")
	require.NoError(t, err)
	assert.Equal(t, service.Stats{Total: 3, Cold: 2, Warm: 0, Hot: 1}, st)

	require.NoError(t, svc.Delete(ctx, "u1", last.LeadID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", last.LeadID), apperr.ErrNotFound)

	st, err = svc.Stats("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Hot)
}
