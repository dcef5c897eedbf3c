package serviceImp

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"agrocrm/entities"
	"agrocrm/pkg/activity"
	"agrocrm/pkg/apperr"
	"agrocrm/pkg/drone/repository"
	svc "agrocrm/pkg/drone/service"
	"agrocrm/pkg/metrics"
	"agrocrm/pkg/realtime"
	"agrocrm/pkg/storage"
)

const (
	table  = "drone_flights"
	Bucket = "drone-attachments"

	minFlightParam = 0.1
)

type service struct {
	repo     repository.Repo
	store    storage.Store
	events   realtime.Publisher
	activity activity.Recorder
	maxBytes int64
	now      func() time.Time
}

type Option func(*service)

func WithEvents(p realtime.Publisher) Option { return func(s *service) { s.events = p } }
func WithActivity(r activity.Recorder) Option { return func(s *service) { s.activity = r } }

// WithMaxUploadMB caps attachment size; the default is 50MB.
func WithMaxUploadMB(mb int64) Option {
	return func(s *service) {
		if mb > 0 {
			s.maxBytes = mb << 20
		}
	}
}

func New(r repository.Repo, store storage.Store, opts ...Option) svc.Service {
	s := &service{
		repo:     r,
		store:    store,
		events:   realtime.Nop{},
		activity: activity.Nop{},
		maxBytes: 50 << 20,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, uid string, in *entities.DroneFlight) error {
	if in == nil {
		return apperr.Invalid("flight is required")
	}
	in.FlightID = 0
	in.UserID = uid
	in.Attachments = nil
	if in.FlightDate.IsZero() {
		in.FlightDate = s.now()
	}
	if err := validate(in); err != nil {
		return err
	}
	if err := s.repo.Create(in); err != nil {
		return errors.Wrap(err, "create flight")
	}
	metrics.IncRecord(table, "create")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Insert, uid, in.FlightID, in))
	s.activity.Record(ctx, entities.Activity{
		UserID:      uid,
		Type:        activity.TypeFlight,
		Title:       "Voo de drone registrado",
		Description: fmt.Sprintf("%s em %s", in.Culture, in.FlightDate.Format("02/01/2006")),
		Metadata:    map[string]any{"flight_id": in.FlightID},
	})
	return nil
}

func (s *service) List(uid string) ([]entities.DroneFlight, error) {
	list, err := s.repo.ListByUser(uid)
	return list, errors.Wrap(err, "list flights")
}

func (s *service) UpdatePartial(ctx context.Context, uid string, id uint, p svc.FlightPatch) (*entities.DroneFlight, error) {
	cur, err := s.repo.FindByID(id, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "find flight %d", id)
	}
	if p.FlightDate != nil {
		cur.FlightDate = *p.FlightDate
	}
	if p.Culture != nil {
		cur.Culture = *p.Culture
	}
	if p.FlightHeight != nil {
		cur.FlightHeight = *p.FlightHeight
	}
	if p.Speed != nil {
		cur.Speed = *p.Speed
	}
	if p.ApplicationWidth != nil {
		cur.ApplicationWidth = *p.ApplicationWidth
	}
	if p.DropletType != nil {
		cur.DropletType = *p.DropletType
	}
	if p.FlowRate != nil {
		cur.FlowRate = *p.FlowRate
	}
	if p.AreaCovered != nil {
		cur.AreaCovered = p.AreaCovered
	}
	if p.TotalVolume != nil {
		cur.TotalVolume = p.TotalVolume
	}
	if p.WeatherConditions != nil {
		cur.WeatherConditions = *p.WeatherConditions
	}
	if p.Notes != nil {
		cur.Notes = *p.Notes
	}
	if p.Products != nil {
		cur.Products = *p.Products
	}
	if p.SolidProducts != nil {
		cur.SolidProducts = *p.SolidProducts
	}
	if err := validate(cur); err != nil {
		return nil, err
	}
	return cur, s.save(ctx, cur)
}

func (s *service) Delete(ctx context.Context, uid string, id uint) error {
	cur, err := s.repo.FindByID(id, uid)
	if err != nil {
		return errors.Wrapf(err, "find flight %d", id)
	}
	if _, err := s.repo.Delete(id, uid); err != nil {
		return errors.Wrapf(err, "delete flight %d", id)
	}
	for _, a := range cur.Attachments {
		if err := s.store.Remove(ctx, Bucket, a.Path); err != nil {
			log.Printf("[drone] flight %d: orphaned attachment %s: %v", id, a.Path, err)
		}
	}
	metrics.IncRecord(table, "delete")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Delete, uid, id, nil))
	return nil
}

func (s *service) AddAttachment(ctx context.Context, uid string, id uint, up svc.Upload) (*entities.Attachment, error) {
	ct := strings.ToLower(strings.TrimSpace(up.ContentType))
	if !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "video/") {
		return nil, apperr.Invalid("only image or video files are accepted")
	}
	if up.Size > s.maxBytes {
		return nil, apperr.Invalid(fmt.Sprintf("file must be at most %dMB", s.maxBytes>>20))
	}
	cur, err := s.repo.FindByID(id, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "find flight %d", id)
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(up.Filename)), ".")
	if ext == "" {
		ext = strings.SplitN(strings.TrimPrefix(strings.TrimPrefix(ct, "image/"), "video/"), ";", 2)[0]
	}
	key := fmt.Sprintf("%s/%d/%d.%s", uid, id, s.now().UnixNano(), ext)
	n, err := s.store.Put(ctx, Bucket, key, up.Body)
	if err != nil {
		return nil, errors.Wrap(err, "store attachment")
	}
	if n > s.maxBytes {
		_ = s.store.Remove(ctx, Bucket, key)
		return nil, apperr.Invalid(fmt.Sprintf("file must be at most %dMB", s.maxBytes>>20))
	}

	att := entities.Attachment{
		Name: up.Filename,
		URL:  s.store.URL(Bucket, key),
		Type: ct,
		Size: n,
		Path: key,
	}
	cur.Attachments = append(cur.Attachments, att)
	if err := s.save(ctx, cur); err != nil {
		_ = s.store.Remove(ctx, Bucket, key)
		return nil, err
	}
	return &att, nil
}

func (s *service) RemoveAttachment(ctx context.Context, uid string, id uint, p string) (*entities.DroneFlight, error) {
	cur, err := s.repo.FindByID(id, uid)
	if err != nil {
		return nil, errors.Wrapf(err, "find flight %d", id)
	}
	_, idx, ok := lo.FindIndexOf(cur.Attachments, func(a entities.Attachment) bool { return a.Path == p })
	if !ok {
		return nil, errors.Wrapf(apperr.ErrNotFound, "attachment %q", p)
	}
	if err := s.store.Remove(ctx, Bucket, p); err != nil {
		return nil, errors.Wrap(err, "remove attachment")
	}
	cur.Attachments = append(cur.Attachments[:idx], cur.Attachments[idx+1:]...)
	return cur, s.save(ctx, cur)
}

func (s *service) Export(uid, format string) (*svc.Document, error) {
	list, err := s.List(uid)
	if err != nil {
		return nil, err
	}
	return Render(list, format, s.now())
}

func (s *service) save(ctx context.Context, f *entities.DroneFlight) error {
	if err := s.repo.Update(f); err != nil {
		return errors.Wrapf(err, "update flight %d", f.FlightID)
	}
	metrics.IncRecord(table, "update")
	s.events.Publish(ctx, realtime.NewEvent(table, realtime.Update, f.UserID, f.FlightID, f))
	return nil
}

func validate(f *entities.DroneFlight) error {
	f.Culture = strings.TrimSpace(f.Culture)
	f.DropletType = strings.TrimSpace(f.DropletType)
	if f.Culture == "" {
		return apperr.Invalid("culture is required")
	}
	if f.DropletType == "" {
		return apperr.Invalid("droplet type is required")
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"flight height", f.FlightHeight},
		{"speed", f.Speed},
		{"application width", f.ApplicationWidth},
		{"flow rate", f.FlowRate},
	} {
		if !(p.v >= minFlightParam) {
			return apperr.Invalid(fmt.Sprintf("%s must be at least %.1f", p.name, minFlightParam))
		}
	}
	f.Products = namedOnly(f.Products)
	f.SolidProducts = namedOnly(f.SolidProducts)
	return nil
}

func namedOnly(ps []entities.FlightProduct) []entities.FlightProduct {
	return lo.FilterMap(ps, func(p entities.FlightProduct, _ int) (entities.FlightProduct, bool) {
		p.Name = strings.TrimSpace(p.Name)
		return p, p.Name != ""
	})
}
