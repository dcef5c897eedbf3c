package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"agrocrm/entities"
	"agrocrm/pkg/appointment"
	"agrocrm/pkg/appointment/service"
	"agrocrm/pkg/apperr"
)

type ApptCtrl struct {
	svc service.AppointmentService
	now func() time.Time
}

// New builds the controller; "today" is evaluated in loc.
func New(svc service.AppointmentService, loc *time.Location) *ApptCtrl {
	if loc == nil {
		loc = time.Local
	}
	return &ApptCtrl{svc: svc, now: func() time.Time { return time.Now().In(loc) }}
}

// present converts stored HH:MM:SS times for display.
func present(list []entities.Appointment) []entities.Appointment {
	return lo.Map(list, func(a entities.Appointment, _ int) entities.Appointment {
		return presentOne(a)
	})
}

func presentOne(a entities.Appointment) entities.Appointment {
	a.Time = appointment.DisplayTime(a.Time)
	if a.EndTime != nil {
		end := appointment.DisplayTime(*a.EndTime)
		a.EndTime = &end
	}
	return a
}

func (h *ApptCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.List(uid, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, present(out))
}

func (h *ApptCtrl) Today(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.svc.Today(uid, h.now())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, present(out))
}

func (h *ApptCtrl) Upcoming(c echo.Context) error {
	uid := c.Get("uid").(string)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.svc.Upcoming(uid, h.now(), limit)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, present(out))
}

func (h *ApptCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var in entities.Appointment
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in.AppointmentID = 0
	out, err := h.svc.Save(c.Request().Context(), uid, &in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, presentOne(*out))
}

func (h *ApptCtrl) Update(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var in entities.Appointment
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in.AppointmentID = uint(id)
	out, err := h.svc.Save(c.Request().Context(), uid, &in)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, presentOne(*out))
}

// Patch changes only the status; body {"status": "concluida"}.
func (h *ApptCtrl) Patch(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if body.Status == "" {
		body.Status = entities.AppointmentDone
	}
	out, err := h.svc.PatchStatus(c.Request().Context(), uid, uint(id), body.Status)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, presentOne(*out))
}

func (h *ApptCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), uid, uint(id)); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
